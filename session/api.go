// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Api selects the backend a Session drives.
type Api int

const (
	// NoOp accepts every sample instantly and plays nothing. It is always
	// compiled in.
	NoOp Api = iota
	// Malgo drives miniaudio through cgo.
	Malgo
	// Oto drives the ebitengine oto player.
	Oto
)

var apiNames = map[Api]string{
	NoOp:  "noop",
	Malgo: "malgo",
	Oto:   "oto",
}

func (a Api) String() string {
	if name, ok := apiNames[a]; ok {
		return name
	}
	return fmt.Sprintf("api(%d)", int(a))
}

// ParseApi maps a name as printed by String back to its Api. Matching is
// case insensitive.
func ParseApi(s string) (Api, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for api, name := range apiNames {
		if name == s {
			return api, nil
		}
	}
	return 0, fmt.Errorf("unknown api %q", s)
}

// enumeratorFactory creates the backend-global state of one session. It
// runs on the session's device thread.
type enumeratorFactory func(cfg config) (enumerator, error)

var (
	backendsMtx sync.Mutex
	backends    = map[Api]enumeratorFactory{}
)

// registerBackend is called from the init function of each backend file.
func registerBackend(api Api, f enumeratorFactory) {
	backendsMtx.Lock()
	defer backendsMtx.Unlock()
	if _, dup := backends[api]; dup {
		panic(fmt.Sprintf("session: backend %s registered twice", api))
	}
	backends[api] = f
}

func lookupBackend(api Api) (enumeratorFactory, error) {
	backendsMtx.Lock()
	defer backendsMtx.Unlock()
	f, ok := backends[api]
	if !ok {
		return nil, fmt.Errorf("%s: %w", api, ErrApiNotAvailable)
	}
	return f, nil
}

// Available lists the backends compiled into this binary.
func Available() []Api {
	backendsMtx.Lock()
	defer backendsMtx.Unlock()
	res := make([]Api, 0, len(backends))
	for api := range backends {
		res = append(res, api)
	}
	slices.Sort(res)
	return res
}
