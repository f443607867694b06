package employee

import (
	"context"
	"errors"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/leavebalance"
	leavebalanceerrors "go-ems/internal/leavebalance/errors"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/role"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, params ListParams) ([]EmployeeResponse, int64, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	roles  role.Service
	ledger leavebalance.Service
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	roles role.Service,
	ledger leavebalance.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		roles:  roles,
		ledger: ledger,
		outbox: outbox,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Debug("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	resp := mapToResponse(*empl)

	if empl.RoleID != nil && s.roles != nil {
		r, err := s.roles.Lookup(ctx, empl.RoleID.String())
		if err != nil {
			log.Warn("role lookup failed",
				zap.String("employee_id", id),
				zap.String("role_id", empl.RoleID.String()),
				zap.Error(err),
			)
		} else {
			resp.Role = r.Role
		}
	}

	if s.ledger != nil {
		balance, err := s.ledger.GetByEmployee(ctx, id)
		switch {
		case err == nil:
			resp.Leave = &LeaveSummary{
				Leave:           balance.Leave,
				ExtraLeave:      balance.ExtraLeave,
				PaidLeaveUsed:   balance.PaidLeaveUsed,
				UnpaidLeaveUsed: balance.UnpaidLeaveUsed,
				Remaining:       balance.Remaining,
			}
		case errors.Is(err, leavebalanceerrors.ErrLeaveBalanceNotFound):
		default:
			log.Error("get employee leave summary failed", zap.String("employee_id", id), zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	return resp, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]EmployeeResponse, int64, error) {
	if params.Unpaginated {
		params.Page, params.Limit = 0, 0
	} else {
		if params.Page < 1 {
			params.Page = defaultPage
		}
		if params.Limit < 1 {
			params.Limit = defaultLimit
		}
		if params.Limit > maxLimit {
			params.Limit = maxLimit
		}
	}

	rows, total, err := s.repo.FindAll(ctx, params)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(rows), total, nil
}

// Delete flags the employee, its detail and its ledger in one transaction.
func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		if err := qtx.SoftDelete(ctx, id); err != nil {
			return mapRepositoryError(err)
		}

		if err := s.ledger.WithTx(tx).SoftDelete(ctx, id); err != nil {
			return err
		}

		if s.outbox == nil {
			return nil
		}

		event, err := kafka.NewOutboxEvent(
			"employee",
			id,
			events.EmployeeDeletedType,
			events.EmployeeLifecycleTopic,
			rid,
			events.EmployeeLifecycleEvent{
				EventType:    events.EmployeeDeletedType,
				RequestID:    rid,
				EmployeeID:   id,
				EmployeeCode: empl.EmployeeCode,
				Email:        empl.Email,
				OccurredAt:   s.now().UTC(),
			},
		)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		log.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	log.Info("delete employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return nil
}
