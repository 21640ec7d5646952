package container

import (
	"time"

	app "crop-doctor/internal/application"
	"crop-doctor/internal/domain/port"
)

// Deps: порты, которые собирает cmd.
type Deps struct {
	Users      port.UserRepository
	Remedies   port.RemedySource
	Summaries  port.SummaryProvider
	Identifier port.Identifier    // может быть nil: диагностика по фото недоступна
	Inspector  port.LeafInspector // может быть nil: фото не проверяется

	SummaryTimeout  time.Duration
	IdentifyTimeout time.Duration
}

type Container struct {
	UserService      *app.UserService
	RemedyResolver   *app.RemedyResolver
	Descriptions     *app.DescriptionResolver
	DiagnosisService *app.DiagnosisService
}

func New(deps Deps) *Container {
	userService := app.NewUserService(deps.Users)
	remedies := app.NewRemedyResolver(deps.Remedies)
	descriptions := app.NewDescriptionResolver(deps.Summaries, deps.SummaryTimeout)
	diagnosis := app.NewDiagnosisService(deps.Identifier, deps.Inspector, remedies, descriptions, deps.IdentifyTimeout)

	return &Container{
		UserService:      userService,
		RemedyResolver:   remedies,
		Descriptions:     descriptions,
		DiagnosisService: diagnosis,
	}
}
