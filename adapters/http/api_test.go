package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	authUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/auth"
	githubUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/github"
	profileUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/profile"
	"github.com/yash-jivani/DevNetworks/internal/domain/github"
	"github.com/yash-jivani/DevNetworks/internal/domain/profile"
	"github.com/yash-jivani/DevNetworks/internal/domain/user"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

type memUserRepo struct {
	byEmail map[string]*user.User
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailConflict
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return user.ErrUserNotFound
}

type memProfileRepo struct {
	byUser map[uuid.UUID]*profile.Profile
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	if p, ok := r.byUser[userID]; ok {
		c := *p
		return &c, nil
	}
	return nil, profile.ErrProfileNotFound
}

func (r *memProfileRepo) ListAll(_ context.Context) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.byUser))
	for _, p := range r.byUser {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	c := *p
	r.byUser[p.UserID] = &c
	return nil
}

func (r *memProfileRepo) Delete(_ context.Context, userID uuid.UUID) error {
	if _, ok := r.byUser[userID]; !ok {
		return profile.ErrProfileNotFound
	}
	delete(r.byUser, userID)
	return nil
}

type memLister struct {
	repos map[string][]github.Repo
}

func (l *memLister) ListRepos(_ context.Context, username string, limit int) ([]github.Repo, error) {
	repos, ok := l.repos[username]
	if !ok {
		return nil, apperror.NewNotFoundMsg("No github profile found")
	}
	if len(repos) > limit {
		repos = repos[:limit]
	}
	return repos, nil
}

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	jwtSvc *auth.JWTService
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	userRepo := &memUserRepo{byEmail: make(map[string]*user.User)}
	profileRepo := &memProfileRepo{byUser: make(map[uuid.UUID]*profile.Profile)}
	lister := &memLister{repos: map[string][]github.Repo{
		"alice": {{ID: 1, Name: "repo-a"}, {ID: 2, Name: "repo-b"}},
	}}

	s.jwtSvc = auth.NewJWTService("api-test-secret", time.Hour)

	registerUseCase := authUC.NewRegisterUseCase(userRepo, s.jwtSvc, nil, log)
	loginUseCase := authUC.NewLoginUseCase(userRepo, s.jwtSvc, log)
	currentUseCase := authUC.NewCurrentUserUseCase(userRepo)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, nil, log)
	listReposUseCase := githubUC.NewListReposUseCase(lister)

	s.router = NewRouter(
		NewAuthHandler(registerUseCase, loginUseCase, currentUseCase),
		NewProfileHandler(profileUseCase),
		NewGithubHandler(listReposUseCase),
		s.jwtSvc,
		log,
	)
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *APITestSuite) registerAlice() string {
	rr := s.do(http.MethodPost, "/api/users", "", `{"name":"Alice","email":"alice@x.com","password":"secret1"}`)
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp["token"])
	return resp["token"]
}

func (s *APITestSuite) Test_Register_ReturnsToken() {
	token := s.registerAlice()

	claims, err := s.jwtSvc.ValidateToken(token)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, claims.UserID)
}

func (s *APITestSuite) Test_Register_Duplicate() {
	s.registerAlice()

	rr := s.do(http.MethodPost, "/api/users", "", `{"name":"Other","email":"alice@x.com","password":"secret2"}`)
	s.Equal(http.StatusConflict, rr.Code)
	s.Contains(rr.Body.String(), "User already exists")
}

func (s *APITestSuite) Test_Login_InvalidCredentialsUniform() {
	s.registerAlice()

	wrongPass := s.do(http.MethodPost, "/api/auth", "", `{"email":"alice@x.com","password":"wrong1"}`)
	unknown := s.do(http.MethodPost, "/api/auth", "", `{"email":"nobody@x.com","password":"secret1"}`)

	s.Equal(http.StatusUnauthorized, wrongPass.Code)
	s.Equal(http.StatusUnauthorized, unknown.Code)
	s.Equal(wrongPass.Body.String(), unknown.Body.String())
	s.Contains(wrongPass.Body.String(), "Invalid credentials")
}

func (s *APITestSuite) Test_CurrentUser() {
	token := s.registerAlice()

	rr := s.do(http.MethodGet, "/api/auth", token, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `"alice@x.com"`)
	s.NotContains(rr.Body.String(), "password")
}

func (s *APITestSuite) Test_GetMyProfile_BeforeUpsert() {
	token := s.registerAlice()

	rr := s.do(http.MethodGet, "/api/profile/me", token, "")
	s.Equal(http.StatusNotFound, rr.Code)
	s.Contains(rr.Body.String(), "There is no profile for this user")
}

func (s *APITestSuite) Test_UpsertProfile_ValidationShortCircuits() {
	token := s.registerAlice()

	rr := s.do(http.MethodPost, "/api/profile", token, `{"company":"Acme"}`)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), "Status is required")
	s.Contains(rr.Body.String(), "Skills is required")
}

func (s *APITestSuite) Test_UpsertProfile_CreateThenMerge() {
	token := s.registerAlice()

	first := s.do(http.MethodPost, "/api/profile", token,
		`{"status":"Developer","skills":"Go, Redis,","company":"Acme"}`)
	s.Require().Equal(http.StatusOK, first.Code)

	var p1 ProfileDTO
	s.Require().NoError(json.Unmarshal(first.Body.Bytes(), &p1))
	s.Equal([]string{"Go", "Redis", ""}, p1.Skills)
	s.Equal("Acme", p1.Company)

	second := s.do(http.MethodPost, "/api/profile", token,
		`{"status":"Developer","skills":"Go, Redis,","website":"https://a.example","twitter":"@alice"}`)
	s.Require().Equal(http.StatusOK, second.Code)

	var p2 ProfileDTO
	s.Require().NoError(json.Unmarshal(second.Body.Bytes(), &p2))
	s.Equal("Acme", p2.Company)
	s.Equal("https://a.example", p2.Website)
	s.Equal("@alice", p2.Social.Twitter)
}

func (s *APITestSuite) Test_Experience_AddAndRemove() {
	token := s.registerAlice()
	s.do(http.MethodPost, "/api/profile", token, `{"status":"Developer","skills":"Go"}`)

	rr := s.do(http.MethodPut, "/api/profile/experience", token,
		`{"title":"Junior","company":"A","from":"2019-01-01"}`)
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(http.MethodPut, "/api/profile/experience", token,
		`{"title":"Senior","company":"B","from":"2021-06-01","current":true}`)
	s.Require().Equal(http.StatusOK, rr.Code)

	var p ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &p))
	s.Require().Len(p.Experience, 2)
	s.Equal("Senior", p.Experience[0].Title)
	s.Equal("Junior", p.Experience[1].Title)

	// unknown entry id: nothing is removed
	rr = s.do(http.MethodDelete, "/api/profile/experience/"+uuid.NewString(), token, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &p))
	s.Len(p.Experience, 2)

	rr = s.do(http.MethodDelete, "/api/profile/experience/"+p.Experience[0].ID, token, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &p))
	s.Require().Len(p.Experience, 1)
	s.Equal("Junior", p.Experience[0].Title)
}

func (s *APITestSuite) Test_Experience_EmptyFromDateRejected() {
	token := s.registerAlice()
	s.do(http.MethodPost, "/api/profile", token, `{"status":"Developer","skills":"Go"}`)

	rr := s.do(http.MethodPut, "/api/profile/experience", token,
		`{"title":"Dev","company":"Acme","from":""}`)
	s.Equal(http.StatusBadRequest, rr.Code)

	me := s.do(http.MethodGet, "/api/profile/me", token, "")
	s.Require().Equal(http.StatusOK, me.Code)

	var body struct {
		Profile ProfileDTO `json:"profile"`
	}
	s.Require().NoError(json.Unmarshal(me.Body.Bytes(), &body))
	s.Empty(body.Profile.Experience)
}

func (s *APITestSuite) Test_Education_ValidationMessages() {
	token := s.registerAlice()
	s.do(http.MethodPost, "/api/profile", token, `{"status":"Developer","skills":"Go"}`)

	rr := s.do(http.MethodPut, "/api/profile/education", token, `{"degree":"BSc"}`)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), "School is required")
	s.Contains(rr.Body.String(), "Field of study is required")
	s.Contains(rr.Body.String(), "From date is required")
}

func (s *APITestSuite) Test_GetProfileByUserID_MalformedId() {
	rr := s.do(http.MethodGet, "/api/profile/user/not-a-uuid", "", "")
	s.Equal(http.StatusNotFound, rr.Code)
	s.Contains(rr.Body.String(), "Profile not found")
}

func (s *APITestSuite) Test_ListProfiles_PopulatesOwner() {
	token := s.registerAlice()
	s.do(http.MethodPost, "/api/profile", token, `{"status":"Developer","skills":"Go"}`)

	rr := s.do(http.MethodGet, "/api/profile", "", "")
	s.Require().Equal(http.StatusOK, rr.Code)

	var profiles []ProfileDTO
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &profiles))
	s.Require().Len(profiles, 1)
	s.Equal("Developer", profiles[0].Status)
}

func (s *APITestSuite) Test_DeleteAccount() {
	token := s.registerAlice()
	s.do(http.MethodPost, "/api/profile", token, `{"status":"Developer","skills":"Go"}`)

	rr := s.do(http.MethodDelete, "/api/profile", token, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "user deleted")

	login := s.do(http.MethodPost, "/api/auth", "", `{"email":"alice@x.com","password":"secret1"}`)
	s.Equal(http.StatusUnauthorized, login.Code)
}

func (s *APITestSuite) Test_GithubRepos() {
	rr := s.do(http.MethodGet, "/api/profile/github/alice", "", "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "repo-a")

	rr = s.do(http.MethodGet, "/api/profile/github/ghost", "", "")
	s.Equal(http.StatusNotFound, rr.Code)
	s.Contains(rr.Body.String(), "No github profile found")
}

func (s *APITestSuite) Test_ProtectedRoutesRequireToken() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth"},
		{http.MethodGet, "/api/profile/me"},
		{http.MethodPost, "/api/profile"},
		{http.MethodDelete, "/api/profile"},
		{http.MethodPut, "/api/profile/experience"},
		{http.MethodPut, "/api/profile/education"},
	} {
		rr := s.do(route.method, route.path, "", "")
		s.Equal(http.StatusUnauthorized, rr.Code, route.path)
	}
}
