package platforms

// Platform es una consola o familia de hardware a la que pertenece un item.
type Platform struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// CreatePlatformInput es el payload de POST /platforms.
type CreatePlatformInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Manufacturer *string `json:"manufacturer,omitempty" validate:"omitempty,max=100"`
	Notes        *string `json:"notes,omitempty"`
}
