package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bistro/internal/cart"
	"bistro/internal/domain"
	"bistro/internal/events"
	"bistro/internal/repos"
	"bistro/internal/session"
)

type CartService struct {
	DB       *sqlx.DB
	Carts    *repos.CartRepo
	Sessions *repos.SessionRepo
	Receipts *repos.ReceiptRepo
	Catalog  *CatalogService
	Events   events.Publisher
	Now      func() time.Time
}

func NewCartService(db *sqlx.DB, carts *repos.CartRepo, sessions *repos.SessionRepo,
	receipts *repos.ReceiptRepo, cat *CatalogService, pub events.Publisher) *CartService {
	return &CartService{DB: db, Carts: carts, Sessions: sessions, Receipts: receipts,
		Catalog: cat, Events: pub, Now: time.Now}
}

func (s *CartService) View(sid string) (*cart.Cart, error) {
	return s.Carts.Load(s.DB, sid)
}

// mutate loads the cart, applies fn and stores the result in one
// transaction. Nothing inside fn may touch s.DB directly.
func (s *CartService) mutate(sid string, fn func(q repos.Querier, c *cart.Cart) error) (*cart.Cart, error) {
	var out *cart.Cart
	err := repos.InTx(s.DB, func(tx *sqlx.Tx) error {
		if err := s.Sessions.Touch(tx, sid); err != nil {
			return err
		}
		c, err := s.Carts.Load(tx, sid)
		if err != nil {
			return err
		}
		if err := fn(tx, c); err != nil {
			return err
		}
		out = c
		return s.Carts.Save(tx, sid, c)
	})
	return out, err
}

// Add puts one of the dish in the session's cart. Guests get
// session.ErrSignInRequired.
func (s *CartService) Add(sess session.Session, dishID int) (cart.Line, error) {
	if err := sess.RequireUser(); err != nil {
		return cart.Line{}, err
	}
	d, err := s.Catalog.Dish(dishID)
	if err != nil {
		return cart.Line{}, err
	}
	var line cart.Line
	_, err = s.mutate(sess.ID, func(_ repos.Querier, c *cart.Cart) error {
		line = c.Add(d)
		return nil
	})
	return line, err
}

// UpdateQuantity applies delta; found is false when the dish wasn't in the cart.
func (s *CartService) UpdateQuantity(sid string, dishID, delta int) (qty int, found bool, err error) {
	_, err = s.mutate(sid, func(_ repos.Querier, c *cart.Cart) error {
		qty, found = c.UpdateQuantity(dishID, delta)
		return nil
	})
	return qty, found, err
}

func (s *CartService) Remove(sid string, dishID int) (found bool, err error) {
	_, err = s.mutate(sid, func(_ repos.Querier, c *cart.Cart) error {
		found = c.Remove(dishID)
		return nil
	})
	return found, err
}

// Clear empties the cart. Callers confirm with the user first.
func (s *CartService) Clear(sid string) error {
	_, err := s.mutate(sid, func(_ repos.Querier, c *cart.Cart) error {
		c.Clear()
		return nil
	})
	return err
}

// Checkout records a receipt for the current cart and empties it. An empty
// cart checks out to a zero receipt.
func (s *CartService) Checkout(sid string) (domain.Receipt, error) {
	var rc domain.Receipt
	_, err := s.mutate(sid, func(q repos.Querier, c *cart.Cart) error {
		r := c.Checkout()
		rc = domain.Receipt{
			ID:        uuid.NewString(),
			SessionID: sid,
			Subtotal:  r.Subtotal,
			ItemCount: r.ItemCount,
			CreatedAt: s.Now().UTC(),
			Lines:     make([]domain.ReceiptLine, 0, len(r.Lines)),
		}
		for _, l := range r.Lines {
			rc.Lines = append(rc.Lines, domain.ReceiptLine{
				DishID: l.DishID, Title: l.Title, Quantity: l.Quantity, Price: l.Price,
			})
		}
		return s.Receipts.Create(q, rc)
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	events.Emit(s.Events, events.Event{
		Type: events.CartCheckout,
		Key:  rc.ID,
		At:   rc.CreatedAt,
		Payload: map[string]any{
			"subtotal":  rc.Subtotal.StringFixed(2),
			"itemCount": rc.ItemCount,
		},
	})
	return rc, nil
}
