package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"guestgate/internal/infrastructure/backend"
	"guestgate/internal/infrastructure/storage"
	"guestgate/internal/shared/logger"
)

// fingerprintLength is the number of hex characters kept from the digest.
const fingerprintLength = 12

// DeviceIdentity derives and persists a stable per-device identifier plus a
// short fingerprint. The id is generated once and survives restarts; if the
// store is unavailable the identity degrades to in-memory for the session
// and is not durable.
type DeviceIdentity struct {
	store  storage.KeyValueStore
	logger logger.Interface

	mu sync.Mutex
	id string
}

// NewDeviceIdentity creates a DeviceIdentity backed by the given store.
func NewDeviceIdentity(store storage.KeyValueStore, log logger.Interface) *DeviceIdentity {
	return &DeviceIdentity{
		store:  store,
		logger: log,
	}
}

// DeviceID returns the persisted device id, creating and persisting one on
// first use. Idempotent across calls and restarts.
func (d *DeviceIdentity) DeviceID() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.id != "" {
		return d.id
	}

	if raw, err := d.store.Get(keyDeviceID); err == nil && len(raw) > 0 {
		d.id = string(raw)
		return d.id
	}

	d.id = uuid.NewString()
	if err := d.store.Set(keyDeviceID, []byte(d.id)); err != nil {
		// Identity is not durable without storage; keep it for this session.
		d.logger.Warnw("failed to persist device id, using in-memory identity",
			"error", err,
		)
	}
	return d.id
}

// Fingerprint derives a short hash from the device id and coarse
// environment attributes. It is a weak correlation hint only.
func (d *DeviceIdentity) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", d.DeviceID(), platform(), timezone())))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}

// Info assembles the device info sent with token issuance.
func (d *DeviceIdentity) Info() backend.DeviceInfo {
	return backend.DeviceInfo{
		DeviceID:    d.DeviceID(),
		Fingerprint: d.Fingerprint(),
		Platform:    platform(),
		Timezone:    timezone(),
	}
}

func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

func timezone() string {
	return time.Now().Location().String()
}
