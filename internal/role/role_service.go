package role

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RoleKeyPrefix = "roles:"
	roleCacheTTL  = 1 * time.Hour
)

func GetRoleKey(id string) string {
	return RoleKeyPrefix + id
}

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	Lookup(ctx context.Context, id string) (RoleResponse, error)
	ListAssignable(ctx context.Context) ([]RoleResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Lookup(ctx context.Context, id string) (RoleResponse, error) {
	cacheKey := GetRoleKey(id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp RoleResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		r, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		resp := mapToResponse(*r)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, roleCacheTTL).Err(); err != nil {
					s.logger.Warn("cache role failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Debug("role lookup failed", zap.String("role_id", id), zap.Error(err))
		return RoleResponse{}, err
	}

	return v.(RoleResponse), nil
}

// ListAssignable returns every role except ADMIN.
func (s *service) ListAssignable(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list roles failed", zap.Error(err))
		return nil, err
	}

	resp := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		if r.Role == Admin {
			continue
		}
		resp = append(resp, mapToResponse(r))
	}
	return resp, nil
}
