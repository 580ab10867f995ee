package services

import (
	"context"
	"securix/models"
	"securix/utils"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Time to acquire location and reach the dispatch desk.
	sosActivationDelay = 2 * time.Second
	// Dwell time in resolved before the slot resets to idle.
	sosResolveDelay = 1 * time.Second
)

// Mock geolocation snapshot (Almaty) used until a real provider exists.
var sosMockLocation = models.SOSLocation{
	Latitude:  43.2220,
	Longitude: 76.8512,
	Address:   "Алматы, проспект Абая, 150",
}

var sosDefaultContacts = []string{"+7 777 123 4567", "+7 777 765 4321"}

// Broadcaster pushes container events to connected websocket clients.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// SOSService is the panic-button state machine:
// idle -> activating -> active -> resolved -> idle, with cancel short-
// circuiting back to idle from activating or active. A single activation
// slot exists; concurrent triggers are rejected.
type SOSService struct {
	authService *AuthService
	notifier    Notifier
	broadcaster Broadcaster
	clock       utils.Clock

	mu         sync.Mutex
	status     string
	activation *models.SOSActivation
	pending    utils.Timer
}

func NewSOSService(authService *AuthService, notifier Notifier, broadcaster Broadcaster, clock utils.Clock) *SOSService {
	return &SOSService{
		authService: authService,
		notifier:    notifier,
		broadcaster: broadcaster,
		clock:       clock,
		status:      models.SOSStatusIdle,
	}
}

// Activate starts an SOS session. Rejected while another activation is in
// flight.
func (ss *SOSService) Activate(ctx context.Context) (*models.SOSStatusResponse, error) {
	ss.mu.Lock()

	if ss.status != models.SOSStatusIdle {
		ss.mu.Unlock()
		return nil, utils.NewSOSAlreadyActiveError()
	}

	activation := &models.SOSActivation{
		ID:       utils.GenerateUUID(),
		Status:   models.SOSStatusActivating,
		Contacts: []string{},
	}
	if user := ss.authService.CurrentUser(); user != nil {
		activation.UserID = user.ID
	}

	ss.status = models.SOSStatusActivating
	ss.activation = activation
	id := activation.ID

	// Geolocation and dispatch acquisition are simulated with a timer.
	ss.pending = ss.clock.AfterFunc(sosActivationDelay, func() {
		ss.completeActivation(id)
	})
	ss.mu.Unlock()

	logrus.WithField("activationId", id).Warn("SOS activation started")
	ss.broadcastStatus()

	return ss.Status(ctx), nil
}

func (ss *SOSService) completeActivation(id string) {
	ss.mu.Lock()

	if ss.status != models.SOSStatusActivating || ss.activation == nil || ss.activation.ID != id {
		ss.mu.Unlock()
		return
	}

	now := ss.clock.Now()
	location := sosMockLocation
	ss.activation.Status = models.SOSStatusActive
	ss.activation.ActivatedAt = &now
	ss.activation.Location = &location
	ss.activation.Contacts = append([]string{}, sosDefaultContacts...)
	ss.activation.DispatchNotified = true
	ss.status = models.SOSStatusActive

	contacts := ss.activation.Contacts
	address := location.Address
	ss.mu.Unlock()

	ctx := context.Background()
	for _, phone := range contacts {
		if err := ss.notifier.NotifyContact(ctx, phone, id); err != nil {
			logrus.Warnf("Failed to notify contact %s: %v", phone, err)
		}
	}
	if err := ss.notifier.NotifyDispatch(ctx, id, address); err != nil {
		logrus.Warnf("Failed to notify dispatch: %v", err)
	}

	logrus.WithField("activationId", id).Warn("SOS active, contacts and dispatch notified")
	ss.broadcastStatus()
}

// Resolve ends an active session. The record dwells in resolved briefly,
// then the slot resets to idle and the record is discarded.
func (ss *SOSService) Resolve(ctx context.Context) (*models.SOSStatusResponse, error) {
	ss.mu.Lock()

	if ss.status != models.SOSStatusActive {
		ss.mu.Unlock()
		return nil, utils.NewConflictError("No active SOS session to resolve")
	}

	ss.status = models.SOSStatusResolved
	ss.activation.Status = models.SOSStatusResolved
	id := ss.activation.ID

	ss.pending = ss.clock.AfterFunc(sosResolveDelay, func() {
		ss.reset(id)
	})
	ss.mu.Unlock()

	logrus.WithField("activationId", id).Info("SOS resolved")
	ss.broadcastStatus()

	return ss.Status(ctx), nil
}

func (ss *SOSService) reset(id string) {
	ss.mu.Lock()
	if ss.activation == nil || ss.activation.ID != id {
		ss.mu.Unlock()
		return
	}
	ss.status = models.SOSStatusIdle
	ss.activation = nil
	ss.mu.Unlock()

	ss.broadcastStatus()
}

// Cancel discards the in-flight session immediately.
func (ss *SOSService) Cancel(ctx context.Context) (*models.SOSStatusResponse, error) {
	ss.mu.Lock()

	if ss.status != models.SOSStatusActivating && ss.status != models.SOSStatusActive {
		ss.mu.Unlock()
		return nil, utils.NewConflictError("No SOS session to cancel")
	}

	if ss.pending != nil {
		ss.pending.Stop()
		ss.pending = nil
	}
	id := ss.activation.ID
	ss.status = models.SOSStatusIdle
	ss.activation = nil
	ss.mu.Unlock()

	logrus.WithField("activationId", id).Info("SOS cancelled")
	ss.broadcastStatus()

	return ss.Status(ctx), nil
}

// Status reports the current slot.
func (ss *SOSService) Status(_ context.Context) *models.SOSStatusResponse {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	response := &models.SOSStatusResponse{Status: ss.status}
	if ss.activation != nil {
		clone := *ss.activation
		response.Activation = &clone
	}
	return response
}

func (ss *SOSService) broadcastStatus() {
	if ss.broadcaster == nil {
		return
	}
	ss.broadcaster.Broadcast(models.WSEventSOSStatus, ss.Status(context.Background()))
}
