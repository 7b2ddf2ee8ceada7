//go:build windows

package overlay

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmDestroy     = 0x0002
	wmPaint       = 0x000F
	wmKeyDown     = 0x0100
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204

	wsPopup        = 0x80000000
	wsVisible      = 0x10000000
	wsExTopmost    = 0x00000008
	wsExToolWindow = 0x00000080
	wsExLayered    = 0x00080000

	lwaAlpha  = 0x00000002
	idcCross  = 32515
	vkEscape  = 0x1B
	psSolid   = 0
	nullBrush = 5
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassEx  = user32.NewProc("RegisterClassExW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procGetMessage       = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
	procLoadCursor       = user32.NewProc("LoadCursorW")
	procSetCapture       = user32.NewProc("SetCapture")
	procReleaseCapture   = user32.NewProc("ReleaseCapture")
	procInvalidateRect   = user32.NewProc("InvalidateRect")
	procBeginPaint       = user32.NewProc("BeginPaint")
	procEndPaint         = user32.NewProc("EndPaint")
	procShowWindow       = user32.NewProc("ShowWindow")
	procSetForeground    = user32.NewProc("SetForegroundWindow")
	procSetLayeredAttrs  = user32.NewProc("SetLayeredWindowAttributes")
	procGetModuleHandle  = kernel32.NewProc("GetModuleHandleW")

	procCreatePen      = gdi32.NewProc("CreatePen")
	procSelectObject   = gdi32.NewProc("SelectObject")
	procDeleteObject   = gdi32.NewProc("DeleteObject")
	procGetStockObject = gdi32.NewProc("GetStockObject")
	procRectangle      = gdi32.NewProc("Rectangle")
	procCreateBrush    = gdi32.NewProc("CreateSolidBrush")
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type msg struct {
	HWnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type paintStruct struct {
	HDC         windows.Handle
	Erase       int32
	RcPaint     rect
	Restore     int32
	IncUpdate   int32
	RgbReserved [32]byte
}

type rect struct {
	Left, Top, Right, Bottom int32
}

// selection carries the drag state for the one active overlay. The
// window procedure is a C callback, so this has to be package state;
// the mutex in selectRegion keeps overlays strictly one at a time.
type selection struct {
	dragging bool
	startX   int32
	startY   int32
	curX     int32
	curY     int32
	done     bool
	colorRef uintptr
}

var (
	overlayMu   sync.Mutex
	active      *selection
	classAtom   uintptr
	wndProcOnce sync.Once
	wndProcPtr  uintptr
)

func selectRegion(bounds image.Rectangle, opts Options) (image.Rectangle, error) {
	overlayMu.Lock()
	defer overlayMu.Unlock()

	// The message loop must stay on one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	active = &selection{
		// COLORREF is 0x00bbggrr.
		colorRef: uintptr(uint32(opts.Color.B)<<16 | uint32(opts.Color.G)<<8 | uint32(opts.Color.R)),
	}
	defer func() { active = nil }()

	hinst, _, _ := procGetModuleHandle.Call(0)

	wndProcOnce.Do(func() {
		wndProcPtr = syscall.NewCallback(overlayWndProc)
	})

	className, err := syscall.UTF16PtrFromString("ClaudeScreenshotOverlay")
	if err != nil {
		return image.Rectangle{}, err
	}

	if classAtom == 0 {
		cursor, _, _ := procLoadCursor.Call(0, uintptr(idcCross))
		blackBrush, _, _ := procCreateBrush.Call(0)
		wc := wndClassEx{
			Size:       uint32(unsafe.Sizeof(wndClassEx{})),
			WndProc:    wndProcPtr,
			Instance:   windows.Handle(hinst),
			Cursor:     windows.Handle(cursor),
			Background: windows.Handle(blackBrush),
			ClassName:  className,
		}
		atom, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 {
			return image.Rectangle{}, fmt.Errorf("register overlay class: %v", err)
		}
		classAtom = atom
	}

	hwnd, _, err := procCreateWindowEx.Call(
		wsExTopmost|wsExToolWindow|wsExLayered,
		uintptr(unsafe.Pointer(className)),
		0,
		wsPopup|wsVisible,
		uintptr(bounds.Min.X), uintptr(bounds.Min.Y),
		uintptr(bounds.Dx()), uintptr(bounds.Dy()),
		0, 0, hinst, 0,
	)
	if hwnd == 0 {
		return image.Rectangle{}, fmt.Errorf("create overlay window: %v", err)
	}

	alpha := uintptr(opts.Opacity * 255)
	if alpha == 0 {
		alpha = 1 // fully invisible overlays take clicks the user cannot see
	}
	procSetLayeredAttrs.Call(hwnd, 0, alpha, lwaAlpha)
	procShowWindow.Call(hwnd, 5) // SW_SHOW
	procSetForeground.Call(hwnd)

	m := &msg{}
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)
		if ret == 0 || ret == uintptr(syscall.InvalidHandle) {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(m)))
	}

	sel := *active
	if !sel.done {
		return image.Rectangle{}, ErrCancelled
	}

	// Client coords -> virtual-screen coords.
	r := image.Rect(
		int(sel.startX), int(sel.startY),
		int(sel.curX), int(sel.curY),
	).Canon().Add(bounds.Min)

	if r.Dx() < minSelection || r.Dy() < minSelection {
		return image.Rectangle{}, ErrCancelled
	}
	return r, nil
}

func overlayWndProc(hwnd windows.Handle, message uint32, wParam, lParam uintptr) uintptr {
	sel := active
	if sel == nil {
		ret, _, _ := procDefWindowProc.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
		return ret
	}

	switch message {
	case wmLButtonDown:
		sel.dragging = true
		sel.startX, sel.startY = coords(lParam)
		sel.curX, sel.curY = sel.startX, sel.startY
		procSetCapture.Call(uintptr(hwnd))
		return 0

	case wmMouseMove:
		if sel.dragging {
			sel.curX, sel.curY = coords(lParam)
			procInvalidateRect.Call(uintptr(hwnd), 0, 1)
		}
		return 0

	case wmLButtonUp:
		if sel.dragging {
			sel.dragging = false
			sel.curX, sel.curY = coords(lParam)
			sel.done = true
			procReleaseCapture.Call()
			procDestroyWindow.Call(uintptr(hwnd))
		}
		return 0

	case wmRButtonDown:
		procDestroyWindow.Call(uintptr(hwnd))
		return 0

	case wmKeyDown:
		if wParam == vkEscape {
			procDestroyWindow.Call(uintptr(hwnd))
		}
		return 0

	case wmPaint:
		ps := &paintStruct{}
		hdc, _, _ := procBeginPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(ps)))
		if sel.dragging || sel.done {
			pen, _, _ := procCreatePen.Call(psSolid, 2, sel.colorRef)
			oldPen, _, _ := procSelectObject.Call(hdc, pen)
			hollow, _, _ := procGetStockObject.Call(nullBrush)
			oldBrush, _, _ := procSelectObject.Call(hdc, hollow)

			procRectangle.Call(hdc,
				uintptr(min32(sel.startX, sel.curX)), uintptr(min32(sel.startY, sel.curY)),
				uintptr(max32(sel.startX, sel.curX)), uintptr(max32(sel.startY, sel.curY)))

			procSelectObject.Call(hdc, oldBrush)
			procSelectObject.Call(hdc, oldPen)
			procDeleteObject.Call(pen)
		}
		procEndPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(ps)))
		return 0

	case wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	}

	ret, _, _ := procDefWindowProc.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
	return ret
}

func coords(lParam uintptr) (int32, int32) {
	return int32(int16(lParam & 0xFFFF)), int32(int16((lParam >> 16) & 0xFFFF))
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
