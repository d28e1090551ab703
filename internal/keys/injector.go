package keys

import (
	"strings"

	"github.com/tourboxd/tourboxd/internal/logger"
	"github.com/tourboxd/tourboxd/internal/mapping"
)

// Injector drives a Driver from the ordered action list the mapping
// Processor produces, per spec.md §4.3. It is called synchronously from
// the processor's goroutine and keeps no locks of its own.
type Injector struct {
	driver Driver
	log    logger.Logger

	// active tracks every host key currently depressed because of an
	// outstanding Press action (typically an OnHold modifier). Execute
	// consults it so a Click inside a held modifier does not re-press it.
	active map[HostKey]bool
}

func NewInjector(driver Driver, log logger.Logger) *Injector {
	return &Injector{
		driver: driver,
		log:    log,
		active: make(map[HostKey]bool),
	}
}

// Execute runs one action. Parse errors are logged as warnings and swallowed so a
// single malformed action string never stalls the processor thread.
func (inj *Injector) Execute(a mapping.Action) {
	switch a.Kind {
	case mapping.Press:
		inj.press(a.Token)
	case mapping.Release:
		inj.release(a.Token)
	case mapping.Click:
		inj.click(a.Token)
	}
}

func (inj *Injector) press(token string) {
	hk, err := parseToken(token)
	if err != nil {
		inj.log.Warning("injector: press: %v", err)
		return
	}
	inj.active[hk] = true
	if err := inj.driver.PressKey(hk); err != nil {
		inj.log.Error("injector: driver press key %v: %v", hk, err)
	}
}

func (inj *Injector) release(token string) {
	hk, err := parseToken(token)
	if err != nil {
		inj.log.Warning("injector: release: %v", err)
		return
	}
	delete(inj.active, hk)
	if err := inj.driver.ReleaseKey(hk); err != nil {
		inj.log.Error("injector: driver release key %v: %v", hk, err)
	}
}

func (inj *Injector) click(s string) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch upper {
	case wheelUp:
		if err := inj.driver.Scroll(-1); err != nil {
			inj.log.Error("injector: scroll up: %v", err)
		}
		return
	case wheelDown:
		if err := inj.driver.Scroll(1); err != nil {
			inj.log.Error("injector: scroll down: %v", err)
		}
		return
	}

	tokens := strings.Split(s, "+")
	var temporarilyPressed []HostKey

	for _, tok := range tokens {
		hk, err := parseToken(tok)
		if err != nil {
			inj.log.Warning("injector: click: %v", err)
			continue
		}
		if inj.active[hk] {
			// Already held by an outer OnHold; leave it alone.
			continue
		}
		if err := inj.driver.PressKey(hk); err != nil {
			inj.log.Error("injector: driver press key %v: %v", hk, err)
			continue
		}
		temporarilyPressed = append(temporarilyPressed, hk)
	}

	for i := len(temporarilyPressed) - 1; i >= 0; i-- {
		hk := temporarilyPressed[i]
		if err := inj.driver.ReleaseKey(hk); err != nil {
			inj.log.Error("injector: driver release key %v: %v", hk, err)
		}
	}
}

// Close releases the underlying driver resources.
func (inj *Injector) Close() error {
	return inj.driver.Close()
}
