package notifier

// INotifier delivers a rendered template to the operator.
type INotifier interface {
	NotifyFromTemplate(to string, subject string, templateName string, data any) error
}
