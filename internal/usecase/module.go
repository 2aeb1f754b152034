package usecase

import "go.uber.org/fx"

// Module provides draft composition use cases to the fx container.
var Module = fx.Provide(
	NewSessionUseCase,
)
