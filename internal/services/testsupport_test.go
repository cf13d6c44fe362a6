package services_test

import (
	"sync"

	"panaderia/internal/models"
	"panaderia/internal/notifier"
	"panaderia/internal/repositories"
	"panaderia/pkg/mailer"
)

// fakeMailer records every message instead of sending it.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mailer.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

// syncRunner executes jobs inline so tests can assert on scheduled
// notifications deterministically.
type syncRunner struct {
	jobErrs []error
}

func (r *syncRunner) Dispatch(job notifier.Job) {
	if err := job(); err != nil {
		r.jobErrs = append(r.jobErrs, err)
	}
}

// seedUsers puts an administrator and a customer (both with email) into a
// fresh mock user repository.
func seedUsers(repo repositories.UserRepository) (admin, customer models.User) {
	admin = models.User{
		ID:       "admin-1",
		Username: "baker",
		Email:    "baker@panaderia.test",
		Password: "hash",
		Role:     models.RoleAdmin,
	}
	customer = models.User{
		ID:       "customer-1",
		Username: "ana",
		Email:    "ana@example.com",
		Password: "hash",
		Role:     models.RoleCustomer,
	}
	repo.Create(&admin)
	repo.Create(&customer)
	return admin, customer
}
