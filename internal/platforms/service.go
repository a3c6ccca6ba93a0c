package platforms

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrorInvalidInput  = errors.New("invalid input")
	ErrorDuplicateName = errors.New("duplicate platform name")
)

// RepositoryAPI es lo que el service necesita del repositorio.
type RepositoryAPI interface {
	List(ctx context.Context) ([]Platform, error)
	Insert(ctx context.Context, input CreatePlatformInput) (Platform, error)
}

// Service contiene las reglas de alta de plataformas.
type Service struct {
	repository RepositoryAPI
	validate   *validator.Validate
}

func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository, validate: validator.New()}
}

// List devuelve el catálogo completo; son pocas filas y no se pagina.
func (service *Service) List(ctx context.Context) ([]Platform, error) {
	return service.repository.List(ctx)
}

// Create valida y persiste una plataforma nueva.
func (service *Service) Create(ctx context.Context, input CreatePlatformInput) (Platform, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Manufacturer = optionalText(input.Manufacturer)
	input.Notes = optionalText(input.Notes)

	if err := service.validate.Struct(input); err != nil {
		return Platform{}, ErrorInvalidInput
	}
	return service.repository.Insert(ctx, input)
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
