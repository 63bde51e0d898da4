package bootstrap

import (
	"calendar-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	CalendarModule,
	NotifierModule,
	CancelTokenModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)
