package shelfsync

import (
	"sync"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/storefront"
	pkgsync "github.com/agentstation/shelfsync/pkg/sync"
)

// Hook function types for run events
type (
	// ProductPublishedHook is called when the storefront accepts a product
	ProductPublishedHook func(product *catalogs.Product, result storefront.UpsertResult)

	// UploadFailedHook is called when an upload is rejected or does not complete
	UploadFailedHook func(product *catalogs.Product, err error)

	// BrandSyncedHook is called once a brand has been processed
	BrandSyncedHook func(result *pkgsync.BrandResult)
)

// hooks manages event callbacks for a run
type hooks struct {
	mu                 sync.RWMutex
	onProductPublished []ProductPublishedHook
	onUploadFailed     []UploadFailedHook
	onBrandSynced      []BrandSyncedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnProductPublished registers a callback for accepted uploads
func (h *hooks) OnProductPublished(fn ProductPublishedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProductPublished = append(h.onProductPublished, fn)
}

// OnUploadFailed registers a callback for rejected or failed uploads
func (h *hooks) OnUploadFailed(fn UploadFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUploadFailed = append(h.onUploadFailed, fn)
}

// OnBrandSynced registers a callback for finished brands
func (h *hooks) OnBrandSynced(fn BrandSyncedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBrandSynced = append(h.onBrandSynced, fn)
}

func (h *hooks) triggerPublished(product *catalogs.Product, result storefront.UpsertResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onProductPublished {
		hook(product, result)
	}
}

func (h *hooks) triggerUploadFailed(product *catalogs.Product, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onUploadFailed {
		hook(product, err)
	}
}

func (h *hooks) triggerBrandSynced(result *pkgsync.BrandResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onBrandSynced {
		hook(result)
	}
}
