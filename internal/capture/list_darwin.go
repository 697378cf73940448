package capture

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdio.h>

typedef struct {
    uint32_t id;
    char     title[256];
} WindowEntry;

// Fills out with on-screen layer-0 windows, front to back. Window names are
// blank without Screen Recording permission, leaving only the owner name.
static int listOnScreenWindows(WindowEntry* out, int max) {
    CFArrayRef info = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (!info) {
        return -1;
    }
    int n = 0;
    CFIndex count = CFArrayGetCount(info);
    for (CFIndex i = 0; i < count && n < max; i++) {
        CFDictionaryRef d = (CFDictionaryRef)CFArrayGetValueAtIndex(info, i);

        int layer = 0;
        CFNumberRef layerRef = (CFNumberRef)CFDictionaryGetValue(d, kCGWindowLayer);
        if (layerRef) {
            CFNumberGetValue(layerRef, kCFNumberIntType, &layer);
        }
        if (layer != 0) {
            continue;
        }

        int32_t id = 0;
        CFNumberRef idRef = (CFNumberRef)CFDictionaryGetValue(d, kCGWindowNumber);
        if (!idRef || !CFNumberGetValue(idRef, kCFNumberSInt32Type, &id)) {
            continue;
        }

        char owner[120] = "", name[120] = "";
        CFStringRef s = (CFStringRef)CFDictionaryGetValue(d, kCGWindowOwnerName);
        if (s) {
            CFStringGetCString(s, owner, sizeof owner, kCFStringEncodingUTF8);
        }
        s = (CFStringRef)CFDictionaryGetValue(d, kCGWindowName);
        if (s) {
            CFStringGetCString(s, name, sizeof name, kCFStringEncodingUTF8);
        }
        if (owner[0] && name[0]) {
            snprintf(out[n].title, sizeof out[n].title, "%s - %s", owner, name);
        } else if (owner[0] || name[0]) {
            snprintf(out[n].title, sizeof out[n].title, "%s", owner[0] ? owner : name);
        } else {
            continue;
        }
        out[n].id = (uint32_t)id;
        n++;
    }
    CFRelease(info);
    return n;
}
*/
import "C"

import "errors"

const maxListedWindows = 512

func listWindows() ([]Window, error) {
	entries := make([]C.WindowEntry, maxListedWindows)
	n := int(C.listOnScreenWindows(&entries[0], C.int(len(entries))))
	if n < 0 {
		return nil, errors.New("CGWindowListCopyWindowInfo failed")
	}
	ws := make([]Window, 0, n)
	for _, e := range entries[:n] {
		ws = append(ws, Window{Handle: Handle(e.id), Title: C.GoString(&e.title[0])})
	}
	return ws, nil
}
