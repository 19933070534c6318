package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/BruksfildServices01/production-board/internal/auth"
	"github.com/BruksfildServices01/production-board/internal/infra/mailer"
	"github.com/BruksfildServices01/production-board/internal/models"
)

// ResetMailer sends the link that lets a user pick a password. It serves
// both the forgotten-password flow and account approval.
type ResetMailer struct {
	tokens  *auth.Tokens
	mailer  mailer.Mailer
	baseURL string
}

func NewResetMailer(tokens *auth.Tokens, m mailer.Mailer, baseURL string) *ResetMailer {
	return &ResetMailer{
		tokens:  tokens,
		mailer:  m,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *ResetMailer) SendReset(ctx context.Context, p *models.Profile) error {
	token, err := r.tokens.IssueReset(p)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := r.baseURL + "/reset-password?token=" + url.QueryEscape(token)

	return r.mailer.Send(ctx, mailer.Message{
		To:      p.Email,
		Subject: "Acesso ao painel de produção",
		Body: fmt.Sprintf(
			"Olá, %s!\n\nUse o link abaixo para definir sua senha e acessar o sistema:\n\n%s\n\nO link expira em 1 hora.\n",
			p.Name, link,
		),
	})
}
