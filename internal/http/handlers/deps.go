package handlers

import (
	"bistro/internal/config"
	"bistro/internal/events"
	"bistro/internal/repos"
	"bistro/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Sessions *services.SessionService

	CourseHandler  *CourseHandler
	MenuHandler    *MenuHandler
	CartHandler    *CartHandler
	ReceiptHandler *ReceiptHandler
	DraftHandler   *DraftHandler
	ProfileHandler *ProfileHandler
	APIHandler     *APIHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, pub events.Publisher) *Deps {
	menuRepo := repos.NewCatalogRepo(db)
	sessRepo := repos.NewSessionRepo(db)
	cartRepo := repos.NewCartRepo(db)
	draftRepo := repos.NewDraftRepo(db)
	receiptRepo := repos.NewReceiptRepo(db)

	catalogSvc := services.NewCatalogService(menuRepo)
	sessSvc := services.NewSessionService(db, sessRepo, draftRepo)
	cartSvc := services.NewCartService(db, cartRepo, sessRepo, receiptRepo, catalogSvc, pub)
	draftSvc := services.NewDraftService(db, draftRepo, pub)
	receiptSvc := services.NewReceiptService(receiptRepo, cfg.PublicBaseURL)

	return &Deps{
		Sessions:       sessSvc,
		CourseHandler:  &CourseHandler{Catalog: catalogSvc},
		MenuHandler:    &MenuHandler{Catalog: catalogSvc, Cart: cartSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		ReceiptHandler: &ReceiptHandler{Receipts: receiptSvc},
		DraftHandler:   &DraftHandler{Drafts: draftSvc},
		ProfileHandler: &ProfileHandler{Sessions: sessSvc},
		APIHandler: &APIHandler{
			Catalog:  catalogSvc,
			Cart:     cartSvc,
			Sessions: sessSvc,
			Receipts: receiptSvc,
		},
	}
}
