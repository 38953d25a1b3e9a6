package services

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"bistro/internal/catalog"
	"bistro/internal/domain"
	"bistro/internal/repos"
)

var ErrDishNotFound = errors.New("dish not found")

type CatalogService struct {
	Menu *repos.CatalogRepo
}

func NewCatalogService(menu *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Menu: menu}
}

// Summaries backs the course browser; q narrows by label or description.
func (s *CatalogService) Summaries(q string) ([]domain.CategorySummary, error) {
	dishes, err := s.Menu.Dishes()
	if err != nil {
		return nil, err
	}
	return catalog.Summaries(dishes, q), nil
}

func (s *CatalogService) AveragePrice(c domain.Category) (decimal.Decimal, error) {
	dishes, err := s.Menu.Dishes()
	if err != nil {
		return decimal.Zero, err
	}
	return catalog.AveragePrice(dishes, c), nil
}

// Dishes lists the menu, filtered to one category when filter is set.
func (s *CatalogService) Dishes(filter domain.Category) ([]domain.Dish, error) {
	dishes, err := s.Menu.Dishes()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return dishes, nil
	}
	return catalog.FilterByCategory(dishes, filter), nil
}

func (s *CatalogService) Courses() ([]domain.Course, error) { return s.Menu.Courses() }

func (s *CatalogService) Dish(id int) (domain.Dish, error) {
	d, err := s.Menu.Dish(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Dish{}, ErrDishNotFound
	}
	return d, err
}
