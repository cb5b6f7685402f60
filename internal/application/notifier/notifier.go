// Package notifier implementa el despacho asíncrono de correos (outbox en
// memoria). Los usecases encolan tareas después de confirmar el cambio de
// estado; un worker las consume y envía. El enqueue nunca bloquea la
// petición y un fallo de entrega se registra, jamás se propaga al caller:
// el cambio de estado ya quedó confirmado.
package notifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

// Mailer es el puerto de salida hacia la infraestructura de correo.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Kind identifica el tipo de notificación.
type Kind string

const (
	KindSignupOTP       Kind = "signup_otp"
	KindPasswordReset   Kind = "password_reset"
	KindPasswordChanged Kind = "password_changed"
)

// Task es una notificación pendiente de envío.
type Task struct {
	Kind      Kind
	To        string
	Code      string        // OTP (KindSignupOTP)
	CodeTTL   time.Duration // vigencia del OTP
	ResetLink string        // enlace de reset (KindPasswordReset)
}

// Dispatcher encola tareas y las envía en segundo plano.
type Dispatcher struct {
	queue  chan Task
	mailer Mailer
	log    *logger.Logger

	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// NewDispatcher construye el dispatcher. queueSize acota el buffer del outbox.
func NewDispatcher(mailer Mailer, log *logger.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}
	return &Dispatcher{
		queue:  make(chan Task, queueSize),
		mailer: mailer,
		log:    log,
	}
}

// Start arranca el worker de envío.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for task := range d.queue {
			if err := d.mailer.Send(task.To, subject(task), body(task)); err != nil {
				// Fallo de infraestructura de correo: absorber y registrar.
				d.log.Error().Err(err).
					Str("kind", string(task.Kind)).
					Str("to", task.To).
					Msg("envío de notificación falló")
				continue
			}
			d.log.Debug().Str("kind", string(task.Kind)).Str("to", task.To).Msg("notificación enviada")
		}
	}()
}

// Enqueue encola una tarea sin bloquear. Con el buffer lleno la tarea se
// descarta con un warn: la latencia del correo no puede afectar la petición.
func (d *Dispatcher) Enqueue(task Task) {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()
	if d.closed {
		d.log.Warn().Str("kind", string(task.Kind)).Msg("dispatcher cerrado, notificación descartada")
		return
	}
	select {
	case d.queue <- task:
	default:
		d.log.Warn().Str("kind", string(task.Kind)).Str("to", task.To).Msg("outbox lleno, notificación descartada")
	}
}

// Close deja de aceptar tareas y espera a que el worker drene la cola.
func (d *Dispatcher) Close() {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.closeMu.Unlock()
	d.wg.Wait()
}

func subject(t Task) string {
	switch t.Kind {
	case KindSignupOTP:
		return "Tu código de verificación"
	case KindPasswordReset:
		return "Restablece tu contraseña"
	case KindPasswordChanged:
		return "Tu contraseña fue actualizada"
	}
	return "Notificación"
}

func body(t Task) string {
	switch t.Kind {
	case KindSignupOTP:
		return fmt.Sprintf(
			"<p>Tu código de verificación es <strong>%s</strong>.</p><p>Expira en %d minutos.</p>",
			t.Code, int(t.CodeTTL.Minutes()),
		)
	case KindPasswordReset:
		return fmt.Sprintf(
			"<p>Recibimos una solicitud para restablecer tu contraseña.</p><p><a href=%q>Restablecer contraseña</a></p><p>Si no fuiste tú, ignora este correo.</p>",
			t.ResetLink,
		)
	case KindPasswordChanged:
		return "<p>Tu contraseña fue cambiada correctamente. Si no reconoces este cambio, contacta a soporte.</p>"
	}
	return ""
}
