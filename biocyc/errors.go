package biocyc

import (
	"errors"
	"net/http"

	"github.com/biocyc/go-biocyc/apierror"
)

// ErrNotFound means the requested identifier does not exist in the organism
// database. It is permanent for that identifier and is not retried.
var ErrNotFound = errors.New("no such entity")

// ErrUnknownAttribute means the named attribute is not defined for the
// entity's kind.
var ErrUnknownAttribute = errors.New("attribute not defined for entity kind")

// IsNotFound reports whether err indicates a nonexistent identifier, either
// as ErrNotFound or as an HTTP 404 from the service.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || apierror.IsStatus(err, http.StatusNotFound)
}
