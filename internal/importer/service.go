package importer

import (
	"fmt"
	"io"

	"github.com/rangehq/rangefin/internal/importer/chase"
	"github.com/rangehq/rangefin/internal/transaction"
)

type Service struct {
	chaseImporter Importer
}

func NewService() *Service {
	return &Service{
		chaseImporter: chase.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	var importer Importer

	switch format {
	case FormatChase:
		importer = s.chaseImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
