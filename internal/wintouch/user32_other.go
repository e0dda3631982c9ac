//go:build !windows

package wintouch

// systemUser32 has no implementation off Windows; handlers created without
// an explicit User32 fail to initialize with ErrUnsupported.
func systemUser32() User32 {
	return nil
}
