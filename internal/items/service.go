package items

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput    = errors.New("invalid input")
	ErrorUnknownPlatform = errors.New("unknown platform")
	ErrorNotFound        = errors.New("item not found")
)

// RepositoryAPI es lo que el service necesita del repositorio.
type RepositoryAPI interface {
	Insert(ctx context.Context, input CreateItemInput) (Item, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Item, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	GetByID(ctx context.Context, id string) (Item, error)
	Update(ctx context.Context, id string, input UpdateItemInput) (Item, error)
	Delete(ctx context.Context, id string) error
}

// Service contiene reglas de negocio de items.
type Service struct {
	repository RepositoryAPI
	validate   *validator.Validate
}

// NewService crea un service de items.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository, validate: NewValidator()}
}

// NewValidator devuelve un validator con la regla "money" registrada.
func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("money", func(field validator.FieldLevel) bool {
		value, negative, ok := ParseMoney(field.Field().String())
		return ok && !negative && MoneyInRange(value)
	})
	return validate
}

// Normalize aplica trims y defaults a un alta. Lo comparten la API y el import CSV.
func (input CreateItemInput) Normalize() CreateItemInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Region = strings.TrimSpace(input.Region)
	if input.Region == "" {
		input.Region = DefaultRegion
	}
	if input.Condition == 0 {
		input.Condition = DefaultCondition
	}
	if input.Kind == 0 {
		input.Kind = DefaultKind
	}
	input.PurchasePrice = normalizeMoney(input.PurchasePrice)
	input.EstimatedValue = normalizeMoney(input.EstimatedValue)
	input.Notes = optionalText(input.Notes)
	input.Publisher = optionalText(input.Publisher)
	input.Developer = optionalText(input.Developer)
	input.Genre = optionalText(input.Genre)
	input.Barcode = optionalText(input.Barcode)
	return input
}

// Create valida reglas y crea el item en DB.
func (service *Service) Create(ctx context.Context, itemInput CreateItemInput) (Item, error) {
	itemInput = itemInput.Normalize()

	if err := service.validate.Struct(itemInput); err != nil {
		return Item{}, ErrorInvalidInput
	}

	item, err := service.repository.Insert(ctx, itemInput)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// List valida paginación y filtros y devuelve la página más el total.
func (service *Service) List(ctx context.Context, page, limit int, filter ListFilter) ([]Item, int, error) {
	// Validación mínima: paginación no puede ser absurda.
	if page < 1 || limit < 1 {
		return nil, 0, ErrorInvalidInput
	}

	filter.Query = strings.TrimSpace(filter.Query)
	filter.Platform = strings.TrimSpace(filter.Platform)
	filter.Region = strings.TrimSpace(filter.Region)
	filter.Genre = strings.TrimSpace(filter.Genre)

	if filter.Kind = strings.TrimSpace(filter.Kind); filter.Kind != "" {
		kind, ok := ParseKind(filter.Kind)
		if !ok {
			return nil, 0, ErrorInvalidInput
		}
		filter.Kind = kind.String()
	}

	if filter.Sort = strings.TrimSpace(filter.Sort); filter.Sort == "" {
		filter.Sort = DefaultSort
	}
	if !ValidSort(filter.Sort) {
		return nil, 0, ErrorInvalidInput
	}

	offset := (page - 1) * limit

	items, err := service.repository.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repository.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Get obtiene un item por ID.
// Nota: el service no valida formato UUID; eso es más de HTTP/entrada (handler).
func (service *Service) Get(ctx context.Context, id string) (Item, error) {
	item, err := service.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// Update valida reglas y actualiza parcialmente un item.
func (service *Service) Update(ctx context.Context, id string, input UpdateItemInput) (Item, error) {
	// Debe venir al menos un campo.
	if input.empty() {
		return Item{}, ErrorInvalidInput
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return Item{}, ErrorInvalidInput
		}
		input.Title = &title
	}
	if input.Region != nil {
		region := strings.TrimSpace(*input.Region)
		if region == "" {
			region = DefaultRegion
		}
		input.Region = &region
	}
	if input.Condition != nil && *input.Condition == 0 {
		input.Condition = nil
	}
	if input.Kind != nil && *input.Kind == 0 {
		input.Kind = nil
	}
	input.PurchasePrice = normalizeMoney(input.PurchasePrice)
	input.EstimatedValue = normalizeMoney(input.EstimatedValue)

	if err := service.validate.Struct(input); err != nil {
		return Item{}, ErrorInvalidInput
	}

	item, err := service.repository.Update(ctx, id, input)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete elimina un item por ID.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}

func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeMoney quita espacios y '+' de importes válidos; los inválidos
// se dejan intactos para que falle la validación "money".
func normalizeMoney(value *string) *string {
	if value == nil {
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return nil
	}
	normalized, _, ok := ParseMoney(*value)
	if !ok {
		return value
	}
	return &normalized
}
