package onboarding

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/leavebalance"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/notification"
	onboardingerrors "go-ems/internal/onboarding/errors"
	"go-ems/internal/role"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/optional"
	"go-ems/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCodeAttempts = 3

//go:generate mockgen -source=onboarding_service.go -destination=mock/onboarding_service_mock.go -package=mock
type Service interface {
	Step(ctx context.Context, req StepRequest, image *File) (StepResult, error)
	Update(ctx context.Context, req StepRequest, image *File) (StepResult, error)
}

type service struct {
	db        *gorm.DB
	employees employee.Repository
	ledger    leavebalance.Service
	roles     role.Service
	store     storage.ArtifactStore
	mailer    notification.Sender
	outbox    kafka.OutboxRepository
	validate  *validator.Validate
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	employees employee.Repository,
	ledger leavebalance.Service,
	roles role.Service,
	store storage.ArtifactStore,
	mailer notification.Sender,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("onboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.service")
	}
	return &service{
		db:        db,
		employees: employees,
		ledger:    ledger,
		roles:     roles,
		store:     store,
		mailer:    mailer,
		outbox:    outbox,
		validate:  validator.New(),
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Step(ctx context.Context, req StepRequest, image *File) (StepResult, error) {
	step := int(req.Step)
	if step < 1 || step > 4 {
		return StepResult{}, onboardingerrors.ErrInvalidStep
	}
	if step == 1 {
		return s.createEmployee(ctx, req, image)
	}

	empID, err := requireEmployeeID(req.EmployeeID)
	if err != nil {
		return StepResult{}, err
	}

	switch step {
	case 2:
		err = s.withDetail(ctx, empID, func(_ *gorm.DB, _ *employee.Employee, d *employee.EmployeeDetail) error {
			mergeProfessionalSparse(d, req)
			return nil
		})
	case 3:
		joining, ok := req.JoiningDate.Sparse()
		if !ok {
			return StepResult{}, onboardingerrors.ErrJoiningDateRequired
		}
		if err := validateSalary(req); err != nil {
			return StepResult{}, err
		}
		err = s.withDetail(ctx, empID, func(tx *gorm.DB, e *employee.Employee, d *employee.EmployeeDetail) error {
			mergeLegalSparse(d, req)
			joined := joining.Time
			e.JoiningDate = &joined
			if err := s.employees.WithTx(tx).Update(ctx, e); err != nil {
				return employee.MapRepositoryError(err)
			}
			_, err := s.ledger.WithTx(tx).Initialize(ctx, empID.String(), leavebalance.EntitlementOnCreate(joined))
			return err
		})
	case 4:
		err = s.withDetail(ctx, empID, func(_ *gorm.DB, _ *employee.Employee, d *employee.EmployeeDetail) error {
			if bank, ok := req.BankDetails.Sparse(); ok {
				d.BankDetails = mergeBankSparse(d.BankDetails, bank)
			}
			return nil
		})
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("onboarding step failed",
			zap.Int("step", step),
			zap.String("employee_id", empID.String()),
			zap.Error(err),
		)
		return StepResult{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("onboarding step completed",
		zap.Int("step", step),
		zap.String("employee_id", empID.String()),
	)
	return StepResult{Step: step, EmployeeID: empID.String()}, nil
}

func (s *service) Update(ctx context.Context, req StepRequest, image *File) (StepResult, error) {
	step := int(req.Step)
	empID, err := requireEmployeeID(req.EmployeeID)
	if err != nil {
		return StepResult{}, err
	}
	if step < 1 || step > 4 {
		return StepResult{}, onboardingerrors.ErrInvalidStep
	}

	var roleResp *role.RoleResponse
	if step == 1 {
		if roleID, ok := req.RoleID.Sparse(); ok {
			r, err := s.roles.Lookup(ctx, strings.TrimSpace(roleID))
			if err != nil {
				return StepResult{}, err
			}
			roleResp = &r
		}
		if image != nil && len(image.Data) > 0 {
			artifact, err := s.store.Upload(ctx, image.Data, image.Name, storage.FolderEmployeeImages)
			if err != nil {
				return StepResult{}, err
			}
			req.Image = optional.Of(artifact.URL)
		}
	}
	if step == 3 {
		if err := validateSalary(req); err != nil {
			return StepResult{}, err
		}
	}

	err = s.withDetail(ctx, empID, func(tx *gorm.DB, e *employee.Employee, d *employee.EmployeeDetail) error {
		switch step {
		case 1:
			if email, ok := req.Email.Presence(); ok && !strings.EqualFold(strings.TrimSpace(email), e.Email) {
				return onboardingerrors.ErrEmailImmutable
			}
			mergePresent(&e.FirstName, req.FirstName)
			mergePresent(&e.LastName, req.LastName)
			mergePresent(&e.PersonalEmail, req.PersonalEmail)
			mergePresent(&e.ImageURL, req.Image)
			if roleResp != nil {
				id := uuid.MustParse(roleResp.ID)
				e.RoleID = &id
			}
			mergeContactPresent(d, req)
			if err := s.employees.WithTx(tx).Update(ctx, e); err != nil {
				return employee.MapRepositoryError(err)
			}
		case 2:
			mergeProfessionalPresent(d, req)
		case 3:
			mergeLegalPresent(d, req)
			joined := s.now()
			switch {
			case req.JoiningDate.IsPresent() && !req.JoiningDate.Value().IsZero():
				joined = req.JoiningDate.Value().Time
				e.JoiningDate = &joined
				if err := s.employees.WithTx(tx).Update(ctx, e); err != nil {
					return employee.MapRepositoryError(err)
				}
			case d.JoiningDate != nil:
				joined = *d.JoiningDate
			}
			if _, err := s.ledger.WithTx(tx).Initialize(ctx, empID.String(), leavebalance.EntitlementOnUpdate(joined)); err != nil {
				return err
			}
		case 4:
			if req.BankDetails.IsNull() {
				d.BankDetails = nil
			} else if bank, ok := req.BankDetails.Presence(); ok {
				d.BankDetails = &bank
			}
		}
		return nil
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("onboarding update failed",
			zap.Int("step", step),
			zap.String("employee_id", empID.String()),
			zap.Error(err),
		)
		return StepResult{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("onboarding step updated",
		zap.Int("step", step),
		zap.String("employee_id", empID.String()),
	)
	return StepResult{Step: step, EmployeeID: empID.String(), Role: roleResp}, nil
}

// createEmployee runs step 1. The welcome mail is sent inside the transaction
// so a delivery failure leaves no employee behind.
func (s *service) createEmployee(ctx context.Context, req StepRequest, image *File) (StepResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	if image == nil || len(image.Data) == 0 {
		return StepResult{}, onboardingerrors.ErrImageRequired
	}
	email, err := s.requireEmail(req.Email)
	if err != nil {
		return StepResult{}, err
	}
	firstName, ok := req.FirstName.Sparse()
	if !ok {
		return StepResult{}, apperror.RequiredField("firstName")
	}
	lastName, ok := req.LastName.Sparse()
	if !ok {
		return StepResult{}, apperror.RequiredField("lastName")
	}
	roleID, ok := req.RoleID.Sparse()
	if !ok {
		return StepResult{}, apperror.RequiredField("role")
	}

	exists, err := s.employees.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("onboarding email check failed", zap.Error(err))
		return StepResult{}, err
	}
	if exists {
		log.Warn("onboarding email already registered", zap.String("email", email))
		return StepResult{}, employeeerrors.ErrEmployeeAlreadyExists
	}

	roleResp, err := s.roles.Lookup(ctx, strings.TrimSpace(roleID))
	if err != nil {
		return StepResult{}, err
	}

	artifact, err := s.store.Upload(ctx, image.Data, image.Name, storage.FolderEmployeeImages)
	if err != nil {
		log.Error("onboarding image upload failed", zap.Error(err))
		return StepResult{}, err
	}

	plain, err := GenerateCredential()
	if err != nil {
		return StepResult{}, err
	}
	hash, err := HashCredential(plain)
	if err != nil {
		return StepResult{}, err
	}

	roleUUID := uuid.MustParse(roleResp.ID)
	empl := &employee.Employee{
		Email:         email,
		PersonalEmail: strings.TrimSpace(req.PersonalEmail.Value()),
		FirstName:     strings.TrimSpace(firstName),
		LastName:      strings.TrimSpace(lastName),
		RoleID:        &roleUUID,
		PasswordHash:  hash,
		ImageURL:      artifact.URL,
		IsActive:      true,
	}
	detail := &employee.EmployeeDetail{}
	mergeContactSparse(detail, req)

	body, err := notification.RenderWelcome(notification.WelcomeData{
		Name:     empl.FullName(),
		Email:    email,
		Password: plain,
	})
	if err != nil {
		return StepResult{}, err
	}

	for attempt := 1; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			qtx := s.employees.WithTx(tx)

			last, err := qtx.FindLastCode(ctx)
			if err != nil {
				return err
			}
			empl.ID = uuid.New()
			empl.EmployeeCode = employee.NextEmployeeCode(last)
			if err := qtx.Create(ctx, empl); err != nil {
				return employee.MapRepositoryError(err)
			}

			detail.ID = uuid.Nil
			detail.EmployeeID = empl.ID
			if err := qtx.CreateDetail(ctx, detail); err != nil {
				return employee.MapRepositoryError(err)
			}

			if s.outbox != nil {
				event, err := kafka.NewOutboxEvent(
					"employee",
					empl.ID.String(),
					events.EmployeeOnboardedType,
					events.EmployeeLifecycleTopic,
					rid,
					events.EmployeeLifecycleEvent{
						EventType:    events.EmployeeOnboardedType,
						RequestID:    rid,
						EmployeeID:   empl.ID.String(),
						EmployeeCode: empl.EmployeeCode,
						Email:        empl.Email,
						OccurredAt:   s.now().UTC(),
					},
				)
				if err != nil {
					return err
				}
				if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
					return err
				}
			}

			return s.mailer.Send(ctx, email, notification.WelcomeSubject, body)
		})
		if errors.Is(err, employeeerrors.ErrEmployeeCodeAlreadyExists) && attempt < maxCodeAttempts {
			log.Warn("employee code collision, retrying",
				zap.String("employee_code", empl.EmployeeCode),
				zap.Int("attempt", attempt),
			)
			continue
		}
		break
	}
	if err != nil {
		log.Error("onboarding step 1 failed", zap.String("email", email), zap.Error(err))
		return StepResult{}, err
	}

	log.Info("employee onboarded",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)
	return StepResult{
		Step:         1,
		EmployeeID:   empl.ID.String(),
		Email:        empl.Email,
		EmployeeCode: empl.EmployeeCode,
		Role:         &roleResp,
	}, nil
}

// withDetail loads the employee and its detail in a transaction, applies fn
// and saves the detail.
func (s *service) withDetail(
	ctx context.Context,
	empID uuid.UUID,
	fn func(tx *gorm.DB, e *employee.Employee, d *employee.EmployeeDetail) error,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.employees.WithTx(tx)

		e, err := qtx.FindByID(ctx, empID.String())
		if err != nil {
			return employee.MapRepositoryError(err)
		}

		d := e.Detail
		if d == nil {
			d = &employee.EmployeeDetail{EmployeeID: e.ID}
		}
		e.Detail = nil

		if err := fn(tx, e, d); err != nil {
			return err
		}
		return employee.MapRepositoryError(qtx.SaveDetail(ctx, d))
	})
}

func (s *service) requireEmail(f optional.Field[string]) (string, error) {
	email, ok := f.Sparse()
	if !ok {
		return "", apperror.RequiredField("email")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "email"); err != nil {
		return "", onboardingerrors.ErrInvalidEmail
	}
	return email, nil
}

func requireEmployeeID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, onboardingerrors.ErrEmployeeIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return id, nil
}

func validateSalary(req StepRequest) error {
	if salary, ok := req.CurrentSalary.Presence(); ok && salary.IsNegative() {
		return onboardingerrors.ErrNegativeSalary
	}
	return nil
}
