package http

import (
	"errors"
	"net/http"

	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/registry"
	"github.com/smaillet/cabinet/internal/service"
	"github.com/smaillet/cabinet/internal/session"
	"github.com/smaillet/cabinet/internal/store"
)

// ErrorKind is the machine-readable error class carried across the command
// boundary next to the user-displayable message.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindNotFound   ErrorKind = "not_found"
	KindConfig     ErrorKind = "config"
	KindIo         ErrorKind = "io"
	KindDatabase   ErrorKind = "database"
	KindInternal   ErrorKind = "internal"
)

type errorClass struct {
	status int
	kind   ErrorKind
}

var errorClassMap = map[error]errorClass{
	service.ErrEmptyProfileName:    {http.StatusBadRequest, KindValidation},
	service.ErrEmptyPassword:       {http.StatusBadRequest, KindValidation},
	service.ErrInvalidPatientInput: {http.StatusBadRequest, KindValidation},

	crypto.ErrPasswordMismatch: {http.StatusUnauthorized, KindAuth},
	session.ErrNoActiveSession: {http.StatusUnauthorized, KindAuth},

	service.ErrProfileNotFound: {http.StatusNotFound, KindNotFound},

	service.ErrCorruptProfileEntry: {http.StatusInternalServerError, KindConfig},
	service.ErrKeyCheckMismatch:    {http.StatusInternalServerError, KindConfig},
	crypto.ErrHashMalformed:        {http.StatusInternalServerError, KindConfig},
	crypto.ErrUnsupportedAlgorithm: {http.StatusInternalServerError, KindConfig},
	crypto.ErrIncompatibleVersion:  {http.StatusInternalServerError, KindConfig},

	registry.ErrCatalogMalformed: {http.StatusInternalServerError, KindIo},

	store.ErrOpeningStore:     {http.StatusInternalServerError, KindDatabase},
	store.ErrApplyingKey:      {http.StatusInternalServerError, KindDatabase},
	store.ErrMigratingSchema:  {http.StatusInternalServerError, KindDatabase},
	store.ErrBuildingSQLQuery: {http.StatusInternalServerError, KindDatabase},
	store.ErrExecutingQuery:   {http.StatusInternalServerError, KindDatabase},
	store.ErrScanningRow:      {http.StatusInternalServerError, KindDatabase},
	store.ErrPatientNotFound:  {http.StatusInternalServerError, KindDatabase},
}

func classifyError(err error) errorClass {
	for target, class := range errorClassMap {
		if errors.Is(err, target) {
			return class
		}
	}
	return errorClass{http.StatusInternalServerError, KindInternal}
}
