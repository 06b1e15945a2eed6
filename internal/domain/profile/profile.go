package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience and Education are sub-documents: they live inside the parent
// profile record and carry a server-assigned id that is stable across
// sibling removals.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Owner carries the public fields of the owning user, populated on reads.
type Owner struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

type Profile struct {
	UserID         uuid.UUID    `json:"user_id"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Owner          *Owner       `json:"user,omitempty"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Update carries only the fields the caller supplied; nil means "leave the
// stored value untouched".
type Update struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// SplitSkills splits a comma-separated list and trims each element. Empty
// elements from consecutive or trailing commas are kept, matching what
// existing clients see in stored profiles.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, len(parts))
	for i, p := range parts {
		skills[i] = strings.TrimSpace(p)
	}
	return skills
}

// Apply merges the supplied fields into the profile. Omitted fields keep
// their stored values (partial update, not replacement).
func (p *Profile) Apply(u Update) {
	if u.Company != nil {
		p.Company = *u.Company
	}
	if u.Website != nil {
		p.Website = *u.Website
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.GithubUsername != nil {
		p.GithubUsername = *u.GithubUsername
	}
	if u.Skills != nil {
		p.Skills = SplitSkills(*u.Skills)
	}
	if u.Youtube != nil {
		p.Social.Youtube = *u.Youtube
	}
	if u.Twitter != nil {
		p.Social.Twitter = *u.Twitter
	}
	if u.Facebook != nil {
		p.Social.Facebook = *u.Facebook
	}
	if u.Linkedin != nil {
		p.Social.Linkedin = *u.Linkedin
	}
	if u.Instagram != nil {
		p.Social.Instagram = *u.Instagram
	}
}

// AddExperience inserts at the head: index 0 is always the most recently
// added entry, not necessarily the most recent by From date.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// RemoveExperience deletes the entry with the given id. An unknown id is a
// no-op and reports false.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
