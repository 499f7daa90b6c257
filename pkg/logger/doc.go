// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers with consistent key names for state machine logs.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format, applies static attributes and wraps the result with
// LogHandlerDecorator, which adds attrs stored with ContextWithAttrs and runs
// registered ContextExtractor callbacks on every record. This lets values
// carried by the context passed to statemachine.Machine.Advance (for example a
// correlation id) show up on the engine's own records:
//
//	ctx = logger.ContextWithAttrs(ctx, slog.String("order_id", order.ID))
//	next, err := m.Advance(ctx, Ship, order)
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "billing"),
//	    logger.WithContextValue("correlation_id", ctxKeyCorrelation),
//	)
//
//	log.InfoContext(ctx, "order shipped",
//	    logger.FromState("paid"),
//	    logger.ToState("shipped"),
//	    logger.Event("ship"),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: presets.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: output format.
//   - WithLevel: minimum level; ParseLevel converts names from configuration.
//   - WithAttr: static attributes.
//   - WithContextExtractors / WithContextValue: attributes from context.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("advance finished", logger.Error(err))
//
// needs no nil check.
package logger
