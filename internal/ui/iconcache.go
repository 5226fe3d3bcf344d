package ui

import (
	"container/list"
	"image"
	"os"
	"sync"

	// Registered decoders for button icon files.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"gioui.org/op/paint"
	"golang.org/x/image/draw"

	"github.com/justyntemme/quickdeck/internal/debug"
)

// IconCache is an LRU cache of decoded button icons. Icons are scaled down
// to the cell size on load so memory stays bounded; a background goroutine
// does the decoding so layout never blocks on disk.
type IconCache struct {
	mu        sync.RWMutex
	cache     map[string]*iconEntry // path -> entry
	lru       *list.List            // front = most recent
	maxSize   int
	maxPixels int // max icon dimension after scaling

	pendingMu sync.Mutex
	pending   map[string]bool
	loadChan  chan string
	stopChan  chan struct{}

	// invalidate wakes the window after a background load finishes.
	invalidate func()
}

type iconEntry struct {
	path    string
	icon    paint.ImageOp
	size    image.Point // original image dimensions
	element *list.Element
}

// NewIconCache creates an icon cache holding up to maxEntries icons scaled
// to at most maxPixels. invalidate, if non-nil, is called after each
// successful load.
func NewIconCache(maxEntries, maxPixels int, invalidate func()) *IconCache {
	ic := &IconCache{
		cache:      make(map[string]*iconEntry),
		lru:        list.New(),
		maxSize:    maxEntries,
		maxPixels:  maxPixels,
		pending:    make(map[string]bool),
		loadChan:   make(chan string, 64),
		stopChan:   make(chan struct{}),
		invalidate: invalidate,
	}
	go ic.backgroundLoader()
	return ic
}

// Get retrieves a cached icon. Returns the icon, the original image size,
// and whether it was found.
func (ic *IconCache) Get(path string) (paint.ImageOp, image.Point, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	entry, ok := ic.cache[path]
	if !ok {
		return paint.ImageOp{}, image.Point{}, false
	}
	ic.lru.MoveToFront(entry.element)
	return entry.icon, entry.size, true
}

// RequestLoad queues a path for background loading. Already cached or
// in-flight paths are ignored.
func (ic *IconCache) RequestLoad(path string) {
	ic.mu.RLock()
	_, cached := ic.cache[path]
	ic.mu.RUnlock()
	if cached {
		return
	}

	ic.pendingMu.Lock()
	if ic.pending[path] {
		ic.pendingMu.Unlock()
		return
	}
	ic.pending[path] = true
	ic.pendingMu.Unlock()

	select {
	case ic.loadChan <- path:
	default:
		// Queue full, drop the request; the next frame will retry.
		ic.pendingMu.Lock()
		delete(ic.pending, path)
		ic.pendingMu.Unlock()
	}
}

// Clear removes all entries.
func (ic *IconCache) Clear() {
	ic.mu.Lock()
	ic.cache = make(map[string]*iconEntry)
	ic.lru = list.New()
	ic.mu.Unlock()

	ic.pendingMu.Lock()
	ic.pending = make(map[string]bool)
	ic.pendingMu.Unlock()

	debug.Log(debug.UI, "IconCache: cleared")
}

// Stop shuts down the background loader.
func (ic *IconCache) Stop() {
	close(ic.stopChan)
}

// Size returns the number of cached icons.
func (ic *IconCache) Size() int {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return len(ic.cache)
}

func (ic *IconCache) backgroundLoader() {
	for {
		select {
		case <-ic.stopChan:
			return
		case path := <-ic.loadChan:
			ic.loadIcon(path)
		}
	}
}

func (ic *IconCache) loadIcon(path string) {
	defer func() {
		ic.pendingMu.Lock()
		delete(ic.pending, path)
		ic.pendingMu.Unlock()
	}()

	file, err := os.Open(path)
	if err != nil {
		debug.Log(debug.UI, "IconCache: failed to open %s: %v", path, err)
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		debug.Log(debug.UI, "IconCache: failed to decode %s: %v", path, err)
		return
	}

	originalSize := img.Bounds().Size()
	scaled := ic.scaleIcon(img)
	ic.put(path, paint.NewImageOp(scaled), originalSize)

	debug.Log(debug.UI, "IconCache: cached %s (original %dx%d, scaled %dx%d)",
		path, originalSize.X, originalSize.Y, scaled.Bounds().Dx(), scaled.Bounds().Dy())

	if ic.invalidate != nil {
		ic.invalidate()
	}
}

// scaleIcon scales an image down to fit within maxPixels, preserving the
// aspect ratio. Small images pass through untouched.
func (ic *IconCache) scaleIcon(src image.Image) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= ic.maxPixels && height <= ic.maxPixels {
		return src
	}

	var scale float64
	if width > height {
		scale = float64(ic.maxPixels) / float64(width)
	} else {
		scale = float64(ic.maxPixels) / float64(height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale)))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func (ic *IconCache) put(path string, icon paint.ImageOp, size image.Point) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if entry, ok := ic.cache[path]; ok {
		entry.icon = icon
		entry.size = size
		ic.lru.MoveToFront(entry.element)
		return
	}

	for ic.lru.Len() >= ic.maxSize {
		oldest := ic.lru.Back()
		if oldest == nil {
			break
		}
		oldEntry := oldest.Value.(*iconEntry)
		delete(ic.cache, oldEntry.path)
		ic.lru.Remove(oldest)
		debug.Log(debug.UI, "IconCache: evicted %s", oldEntry.path)
	}

	entry := &iconEntry{path: path, icon: icon, size: size}
	entry.element = ic.lru.PushFront(entry)
	ic.cache[path] = entry
}
