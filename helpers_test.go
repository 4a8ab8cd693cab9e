package wargamer_test

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/wargamer"
	"github.com/jmgilman/go/wargamer/mocks"
)

const appID = "test-application"

const vehicleListing = `{
	"1": {"tank_id": 1, "name": "Marder II", "short_name": "Marder II"},
	"2": {"tank_id": 2, "name": "M10 Wolverine", "short_name": "Wolverine"}
}`

const encyclopediaInfo = `{
	"game_version": "1.24",
	"vehicle_types": {"heavyTank": "Heavy Tank", "SPG": "SPG"},
	"vehicle_nations": {"ussr": "U.S.S.R.", "germany": "Germany"},
	"vehicle_crew_roles": {"gunner": "Gunner"},
	"languages": {"en": "English"},
	"achievement_sections": {"epic": {"name": "Epic Achievements", "order": 1}},
	"ship_types": {"Destroyer": "Destroyer"}
}`

// ok wraps data in a successful envelope.
func ok(data string) *wargamer.RawResponse {
	return &wargamer.RawResponse{
		StatusCode: 200,
		Body:       []byte(`{"status":"ok","meta":{"count":1},"data":` + data + `}`),
	}
}

// remoteError builds an error envelope.
func remoteError(status, code int, message, field string) *wargamer.RawResponse {
	body := fmt.Sprintf(`{"status":"error","error":{"code":%d,"message":%q,"field":%q,"value":"bad"}}`,
		code, message, field)
	return &wargamer.RawResponse{StatusCode: status, Body: []byte(body)}
}

// vehicleAPI returns a fake API serving the vehicle encyclopedia.
// Vehicles 1, 2 and 42 exist; any other ID is reported as null.
func vehicleAPI(t *testing.T) *mocks.RequesterMock {
	t.Helper()

	return &mocks.RequesterMock{
		SendFunc: func(_ context.Context, rawURL, method string, params url.Values) (*wargamer.RawResponse, error) {
			switch {
			case strings.HasSuffix(rawURL, "/encyclopedia/vehicles/") && params.Has("fields"):
				return ok(vehicleListing), nil
			case strings.HasSuffix(rawURL, "/encyclopedia/vehicles/"):
				return ok(vehicleDetail(params.Get("tank_id"))), nil
			case strings.HasSuffix(rawURL, "/encyclopedia/info/"):
				return ok(encyclopediaInfo), nil
			}
			t.Errorf("unexpected request: %s %s", method, rawURL)
			return &wargamer.RawResponse{StatusCode: 404}, nil
		},
	}
}

func vehicleDetail(id string) string {
	switch id {
	case "1", "2":
		return fmt.Sprintf(`{%q: {"tank_id": %s, "name": "detail-%s"}}`, id, id, id)
	case "42":
		return `{"42": {"tank_id": 42, "name": "detail-42", "modules_tree": {
			"10": {"module_id": 10, "name": "Gun A", "type": "vehicleGun", "price_xp": 0},
			"11": {"module_id": 11, "name": "Gun B", "type": "vehicleGun", "price_xp": 5000},
			"20": {"module_id": 20, "name": "Engine A", "type": "vehicleEngine", "price_xp": 1200}
		}}}`
	default:
		return fmt.Sprintf(`{%q: null}`, id)
	}
}

// listingCalls counts listing requests, the ones asking for fields.
func listingCalls(m *mocks.RequesterMock) int {
	n := 0
	for _, call := range m.SendCalls() {
		if call.Params.Has("fields") {
			n++
		}
	}
	return n
}

// callsTo counts requests whose URL ends with the given method path.
func callsTo(m *mocks.RequesterMock, method string) int {
	n := 0
	for _, call := range m.SendCalls() {
		if strings.HasSuffix(call.RawURL, "/"+method+"/") {
			n++
		}
	}
	return n
}

func newWorldOfTanks(t *testing.T, requester wargamer.Requester, opts ...wargamer.Option) *wargamer.WorldOfTanks {
	t.Helper()

	opts = append([]wargamer.Option{
		wargamer.WithRequester(requester),
		wargamer.WithResponseCache(0, 0),
	}, opts...)

	wot, err := wargamer.NewWorldOfTanks(wargamer.RealmEU, appID, opts...)
	require.NoError(t, err)
	return wot
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
