package share

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"Purchase-Tracker/internal/utils/mailing"
	"Purchase-Tracker/pkg/maps"
	"Purchase-Tracker/pkg/product"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const (
	QRCodeSize = 300

	// CopiedAckDuration is how long the "copied" acknowledgment stays visible.
	CopiedAckDuration = 2 * time.Second
)

type (
	ShareService interface {
		Share(ctx context.Context, productID string, origin string) (domain.ShareResponse, error)
		Lookup(ctx context.Context, token string) (*entities.Product, bool, error)
		QRCode(url string) ([]byte, error)
		EmailLink(ctx context.Context, productID string, origin string, recipient string) (domain.ShareResponse, error)
	}

	shareService struct {
		productRepository product.ProductRepository
		mailer            mailing.Mailer
		newToken          func() string
	}
)

func NewShareService(productRepository product.ProductRepository, mailer mailing.Mailer) ShareService {
	return &shareService{
		productRepository: productRepository,
		mailer:            mailer,
		newToken:          uuid.NewString,
	}
}

// BuildURL composes the public link for token.
func BuildURL(origin string, token string) string {
	return strings.TrimRight(origin, "/") + "/shared/" + token
}

// Share returns the product's share link, assigning a token on first use.
func (s *shareService) Share(ctx context.Context, productID string, origin string) (domain.ShareResponse, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ShareResponse{}, domain.ErrParseUUID
	}

	p, err := s.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShareResponse{}, domain.ErrProductNotFound
		}
		return domain.ShareResponse{}, err
	}

	if p.ShareToken == nil || *p.ShareToken == "" {
		// a concurrent share may have assigned first; the stored token wins either way
		if _, err := s.productRepository.AssignShareToken(ctx, productID, s.newToken()); err != nil {
			return domain.ShareResponse{}, err
		}
		p, err = s.productRepository.GetProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ShareResponse{}, domain.ErrProductNotFound
			}
			return domain.ShareResponse{}, err
		}
		if p.ShareToken == nil {
			return domain.ShareResponse{}, domain.ErrShareFailed
		}
	}

	return domain.ShareResponse{
		Token:       *p.ShareToken,
		URL:         BuildURL(origin, *p.ShareToken),
		ProductName: p.Name,
	}, nil
}

// Lookup finds the product published under token. An unknown token is reported
// through found, not through err.
func (s *shareService) Lookup(ctx context.Context, token string) (*entities.Product, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false, nil
	}

	p, err := s.productRepository.GetProductByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return p, true, nil
}

func (s *shareService) QRCode(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, QRCodeSize)
}

func (s *shareService) EmailLink(ctx context.Context, productID string, origin string, recipient string) (domain.ShareResponse, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return domain.ShareResponse{}, domain.ErrMailNotConfigured
	}

	res, err := s.Share(ctx, productID, origin)
	if err != nil {
		return domain.ShareResponse{}, err
	}

	subject := fmt.Sprintf("Purchase shared with you: %s", res.ProductName)
	body := fmt.Sprintf(
		`<p>%s was shared with you.</p><p><a href="%s">%s</a></p>`,
		html.EscapeString(res.ProductName),
		html.EscapeString(res.URL),
		html.EscapeString(res.URL),
	)
	if err := s.mailer.SendMail(recipient, subject, body); err != nil {
		return domain.ShareResponse{}, err
	}
	return res, nil
}

// ToSharedProductResponse exposes the public fields of a shared product.
func ToSharedProductResponse(p *entities.Product) domain.SharedProductResponse {
	res := domain.SharedProductResponse{
		Name:         p.Name,
		PurchaseDate: p.PurchaseDate.Format(domain.DateLayout),
		Store:        p.Store,
		Price:        p.Price.InexactFloat64(),
		Unit:         p.Unit,
		Quantity:     p.Quantity.InexactFloat64(),
		QuantityUnit: p.QuantityUnit,
		Notes:        p.Notes,
		ImageURL:     p.ImageURL,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
	}
	if p.Category != nil {
		res.CategoryName = p.Category.Name
	}
	if p.HasLocation() {
		res.MapsURL = maps.ExternalLink(*p.Latitude, *p.Longitude)
	}
	return res
}
