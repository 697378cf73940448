package capture

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <dlfcn.h>
#include <stdlib.h>

enum {
    statusOK = 0,
    statusGone = 1,
    statusMinimized = 2,
    statusUnreadable = 3,
    statusZeroArea = 4,
};

typedef struct {
    void*  data;
    size_t size;
    int    width;
    int    height;
    int    status;
} FrameData;

// CGWindowListCreateImage is unavailable in the macOS 15 SDK headers but still
// present in the CoreGraphics dylib. Load it dynamically.
typedef CGImageRef (*CGWindowListCreateImageFunc)(
    CGRect screenBounds,
    uint32_t listOption,
    uint32_t windowID,
    uint32_t imageOption
);

static CGWindowListCreateImageFunc getCGWindowListCreateImage(void) {
    static CGWindowListCreateImageFunc fn = NULL;
    if (!fn) {
        fn = (CGWindowListCreateImageFunc)dlsym(RTLD_DEFAULT, "CGWindowListCreateImage");
    }
    return fn;
}

static int windowStatus(CGWindowID windowID) {
    // kCGWindowListOptionIncludingWindow = 8
    CFArrayRef info = CGWindowListCopyWindowInfo(8, windowID);
    if (!info) {
        return statusGone;
    }
    int status = statusGone;
    if (CFArrayGetCount(info) > 0) {
        CFDictionaryRef desc = (CFDictionaryRef)CFArrayGetValueAtIndex(info, 0);
        CFBooleanRef onscreen = (CFBooleanRef)CFDictionaryGetValue(desc, kCGWindowIsOnscreen);
        status = (onscreen && CFBooleanGetValue(onscreen)) ? statusOK : statusMinimized;
    }
    CFRelease(info);
    return status;
}

FrameData captureWindow(CGWindowID windowID, uint32_t imageOption) {
    FrameData result = {0};

    result.status = windowStatus(windowID);
    if (result.status != statusOK) {
        return result;
    }

    CGWindowListCreateImageFunc fn = getCGWindowListCreateImage();
    if (!fn) {
        result.status = statusUnreadable;
        return result;
    }

    // kCGWindowListOptionIncludingWindow = 8
    CGImageRef image = fn(CGRectNull, 8, windowID, imageOption);
    if (!image) {
        result.status = statusUnreadable;
        return result;
    }

    result.width  = (int)CGImageGetWidth(image);
    result.height = (int)CGImageGetHeight(image);
    if (result.width == 0 || result.height == 0) {
        CGImageRelease(image);
        result.status = statusZeroArea;
        return result;
    }

    size_t bytesPerRow = result.width * 4;
    result.size = bytesPerRow * result.height;
    result.data = malloc(result.size);
    if (!result.data) {
        CGImageRelease(image);
        result.size = 0;
        result.status = statusUnreadable;
        return result;
    }

    CGColorSpaceRef cs = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(
        result.data,
        result.width,
        result.height,
        8,
        bytesPerRow,
        cs,
        kCGImageAlphaNoneSkipLast
    );
    CGContextDrawImage(ctx, CGRectMake(0, 0, result.width, result.height), image);
    CGContextRelease(ctx);
    CGColorSpaceRelease(cs);
    CGImageRelease(image);

    return result;
}

void freeFrameData(void* data) {
    free(data);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/permissions"
)

// CGWindowImageOption bits.
const (
	imageBoundsIgnoreFraming = 1 << 0
	imageNominalResolution   = 1 << 4
)

// Windows are captured at point size, so a Retina window yields the same
// frame dimensions as on a 1x display.
const imageOptions = imageBoundsIgnoreFraming | imageNominalResolution

// CGCapturer captures single windows through CoreGraphics.
type CGCapturer struct{}

// NewWindowCapturer returns the CoreGraphics capturer. Without Screen
// Recording permission the consent dialog is raised and an error returned.
func NewWindowCapturer() (Capturer, error) {
	if err := permissions.EnsureScreenRecording(true); err != nil {
		return nil, fmt.Errorf("window capture: %w", err)
	}
	return &CGCapturer{}, nil
}

func (c *CGCapturer) Capture(h Handle) (*frame.Frame, error) {
	fd := C.captureWindow(C.CGWindowID(h), C.uint32_t(imageOptions))
	switch fd.status {
	case C.statusGone:
		return nil, fail(h, "window info", ErrWindowGone)
	case C.statusMinimized:
		return nil, fail(h, "window info", ErrMinimized)
	case C.statusZeroArea:
		return nil, fail(h, "create image", ErrZeroArea)
	case C.statusUnreadable:
		return nil, fail(h, "create image", ErrUnreadable)
	}
	defer C.freeFrameData(fd.data)

	src := unsafe.Slice((*byte)(fd.data), int(fd.size))

	f := frame.New(int(fd.width), int(fd.height))
	for i, j := 0, 0; j < len(f.Pix); i, j = i+4, j+3 {
		f.Pix[j] = src[i]
		f.Pix[j+1] = src[i+1]
		f.Pix[j+2] = src[i+2]
	}
	return f, nil
}

func (c *CGCapturer) Close() error { return nil }
