//go:build windows

package walk

import "golang.org/x/sys/windows"

// platformHidden consults the Windows hidden file attribute bit; on other
// platforms hidden-ness is dotfile-convention only.
func platformHidden(path string) bool {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
