package email

const (
	subjectQuoteNotificationFmt = "Nueva Solicitud de Cotización: %s"
)
