package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"

	"bistro/internal/domain"
	"bistro/internal/repos"
)

var ErrReceiptNotFound = errors.New("receipt not found")

type ReceiptService struct {
	Receipts *repos.ReceiptRepo
	BaseURL  string
}

func NewReceiptService(receipts *repos.ReceiptRepo, baseURL string) *ReceiptService {
	return &ReceiptService{Receipts: receipts, BaseURL: baseURL}
}

// Get returns the receipt only to the session that checked it out.
func (s *ReceiptService) Get(sid, id string) (domain.Receipt, error) {
	rc, err := s.Receipts.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Receipt{}, ErrReceiptNotFound
	}
	if err != nil {
		return domain.Receipt{}, err
	}
	if rc.SessionID != sid {
		return domain.Receipt{}, ErrReceiptNotFound
	}
	return rc, nil
}

func (s *ReceiptService) Recent(sid string) ([]domain.Receipt, error) {
	return s.Receipts.ListBySession(sid, 5)
}

// URL is the public link printed on the receipt's QR code.
func (s *ReceiptService) URL(id string) string {
	return fmt.Sprintf("%s/receipt/%s", s.BaseURL, id)
}

// QR renders a PNG QR code pointing at the receipt page.
func (s *ReceiptService) QR(sid, id string) ([]byte, error) {
	if _, err := s.Get(sid, id); err != nil {
		return nil, err
	}
	return qrcode.Encode(s.URL(id), qrcode.Medium, 256)
}
