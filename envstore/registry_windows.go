//go:build windows

package envstore

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// RegistryStore persists environment variables in the user-scope registry
// environment area (HKCU\Environment). Values survive reboot and are visible
// to processes started after the settings-change broadcast.
type RegistryStore struct{}

// NewRegistryStore returns a store backed by the user registry.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{}
}

// SetPersistent writes name=value into the user environment area.
func (*RegistryStore) SetPersistent(name, value string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open user environment key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	broadcastSettingChange()
	return nil
}

// ClearPersistent removes name from the user environment area. Clearing a
// name that was never set is not an error.
func (*RegistryStore) ClearPersistent(name string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open user environment key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("clear %s: %w", name, err)
	}

	broadcastSettingChange()
	return nil
}

// Lookup reads back the persisted value for name from the user environment area.
func (*RegistryStore) Lookup(name string) (string, bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE)
	if err != nil {
		return "", false, fmt.Errorf("open user environment key: %w", err)
	}
	defer k.Close()

	value, _, err := k.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %s: %w", name, err)
	}

	return value, true, nil
}

// broadcastSettingChange tells running desktop applications that the user
// environment changed, so shells launched afterwards pick up the new values.
// Best-effort: already-running shells are unaffected either way.
func broadcastSettingChange() {
	const (
		hwndBroadcast   = 0xffff
		wmSettingChange = 0x001a
		smtoAbortIfHung = 0x0002
	)

	user32 := windows.NewLazySystemDLL("user32.dll")
	sendMessageTimeout := user32.NewProc("SendMessageTimeoutW")

	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}

	_, _, _ = sendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(param)),
		uintptr(smtoAbortIfHung),
		5000,
		0,
	)
}
