package httperr

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the store can surface.
const (
	pgInsufficientPrivilege = "42501"
	pgUndefinedColumn       = "42703"
	pgUndefinedTable        = "42P01"
	pgUniqueViolation       = "23505"
)

type Classified struct {
	Status  int
	Code    string
	Message string
}

var messages = map[Kind]string{
	KindBusiness:   "Operação inválida.",
	KindValidation: "Preencha os campos obrigatórios.",
	KindNotFound:   "Registro não encontrado.",
	KindForbidden:  "Acesso negado.",
	KindGenerative: "Falha ao gerar conteúdo com a IA.",
	KindAuth:       "Sessão inválida. Entre novamente.",
}

var statuses = map[Kind]int{
	KindBusiness:   http.StatusConflict,
	KindValidation: http.StatusBadRequest,
	KindNotFound:   http.StatusNotFound,
	KindForbidden:  http.StatusForbidden,
	KindGenerative: http.StatusBadGateway,
	KindAuth:       http.StatusUnauthorized,
}

// Classify maps any error coming out of a use case onto the user-facing
// taxonomy. It never retries anything.
func Classify(err error) Classified {
	var be BusinessError
	if errors.As(err, &be) {
		return Classified{Status: statuses[be.Kind], Code: be.Code, Message: messages[be.Kind]}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Classified{Status: http.StatusNotFound, Code: "not_found", Message: messages[KindNotFound]}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege:
			return Classified{
				Status:  http.StatusForbidden,
				Code:    "permission_denied",
				Message: "O banco de dados recusou a operação por política de segurança. Peça ao administrador para revisar as permissões da tabela.",
			}
		case pgUndefinedColumn, pgUndefinedTable:
			return Classified{
				Status:  http.StatusInternalServerError,
				Code:    "schema_mismatch",
				Message: "Erro de configuração: o esquema do banco não corresponde ao esperado.",
			}
		case pgUniqueViolation:
			return Classified{
				Status:  http.StatusConflict,
				Code:    "already_exists",
				Message: "Registro já existe.",
			}
		}
	}

	if IsConnectivity(err) {
		return Classified{
			Status:  http.StatusServiceUnavailable,
			Code:    "connection_error",
			Message: "Erro de conexão. Verifique sua internet e a configuração do banco.",
		}
	}

	return Classified{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "Erro interno.",
	}
}

func IsConnectivity(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
