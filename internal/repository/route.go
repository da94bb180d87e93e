package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/service"
)

// RouteRepository хранит рассчитанные маршруты
type RouteRepository struct {
	mu     sync.RWMutex
	routes []models.Route
}

func NewRouteRepository() service.RouteRepository {
	return &RouteRepository{}
}

func (r *RouteRepository) Create(ctx context.Context, route *models.Route) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	stored := *route
	stored.Waypoints = slices.Clone(route.Waypoints)
	r.routes = append(r.routes, stored)
	return nil
}

func (r *RouteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.routes {
		if r.routes[i].ID == id {
			return copyRoute(r.routes[i]), nil
		}
	}
	return nil, fmt.Errorf("route with id %s: %w", id, models.ErrNotFound)
}

// List возвращает маршруты от новых к старым
func (r *RouteRepository) List(ctx context.Context) ([]*models.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]*models.Route, 0, len(r.routes))
	for i := len(r.routes) - 1; i >= 0; i-- {
		routes = append(routes, copyRoute(r.routes[i]))
	}
	return routes, nil
}

func copyRoute(route models.Route) *models.Route {
	route.Waypoints = slices.Clone(route.Waypoints)
	return &route
}
