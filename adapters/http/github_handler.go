package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	githubUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/github"
)

type GithubHandler struct {
	listReposUseCase *githubUC.ListReposUseCase
}

func NewGithubHandler(uc *githubUC.ListReposUseCase) *GithubHandler {
	return &GithubHandler{listReposUseCase: uc}
}

func (h *GithubHandler) GetRepos(c *gin.Context) {
	output, err := h.listReposUseCase.Execute(c.Request.Context(), githubUC.ListReposInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Repos)
}
