package importer

import (
	"io"

	"github.com/rangehq/rangefin/internal/transaction"
)

// Format identifies a supported CSV export format.
type Format string

const (
	FormatChase Format = "chase"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
