package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/yash-jivani/DevNetworks/internal/domain/profile"
	"github.com/yash-jivani/DevNetworks/internal/domain/user"
)

// Date accepts both RFC3339 timestamps and plain YYYY-MM-DD values, which is
// what profile clients send for from/to fields.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	// An empty string is a rejection, not an absent value: letting it
	// through would satisfy the required binding with a zero time.
	if s == "" {
		return fmt.Errorf("invalid date %q", s)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// Auth DTOs

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

var registerFieldMsgs = map[string]string{
	"name":     "name is required",
	"email":    "Please include a valid email",
	"password": "please enter a password with 6 or more char.",
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginFieldMsgs = map[string]string{
	"email":    "Please include a valid email",
	"password": "Password is required",
}

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Profile DTOs

type upsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status" binding:"required"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills" binding:"required"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

var upsertProfileFieldMsgs = map[string]string{
	"status": "Status is required",
	"skills": "Skills is required",
}

func (req *upsertProfileRequest) toUpdate() profile.Update {
	return profile.Update{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}
}

type addExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        *Date  `json:"from" binding:"required"`
	To          *Date  `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var addExperienceFieldMsgs = map[string]string{
	"title":   "Title is required",
	"company": "Company is required",
	"from":    "From date is required",
}

type addEducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         *Date  `json:"from" binding:"required"`
	To           *Date  `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var addEducationFieldMsgs = map[string]string{
	"school":       "School is required",
	"degree":       "Degree is required",
	"fieldofstudy": "Field of study is required",
	"from":         "From date is required",
}

func optionalTime(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type ExperienceDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type EducationDTO struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type ProfileOwnerDTO struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ProfileDTO struct {
	UserID         string           `json:"user_id"`
	Company        string           `json:"company,omitempty"`
	Website        string           `json:"website,omitempty"`
	Location       string           `json:"location,omitempty"`
	Bio            string           `json:"bio,omitempty"`
	Status         string           `json:"status"`
	GithubUsername string           `json:"githubusername,omitempty"`
	Skills         []string         `json:"skills"`
	Social         profile.Social   `json:"social"`
	Experience     []ExperienceDTO  `json:"experience"`
	Education      []EducationDTO   `json:"education"`
	User           *ProfileOwnerDTO `json:"user,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		UserID:         p.UserID.String(),
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		UpdatedAt:      p.UpdatedAt,
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}
	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:          e.ID.String(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:           e.ID.String(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}
	}
	if p.Owner != nil {
		dto.User = &ProfileOwnerDTO{Name: p.Owner.Name, Avatar: p.Owner.AvatarURL}
	}
	return dto
}
