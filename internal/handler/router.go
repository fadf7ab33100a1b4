package handler

import (
	"github.com/gin-gonic/gin"
)

// Routes groups the handlers mounted by Register.
type Routes struct {
	Photographers *PhotographerHandler
	Inquiries     *InquiryHandler
	Sessions      *SessionHandler
	Catalog       *CatalogHandler
	Ops           *OpsHandler

	// RequireCatalog guards routes that read the snapshot. Optional.
	RequireCatalog gin.HandlerFunc
}

// Register mounts ops endpoints at the root and the API under prefix.
func (rt Routes) Register(r *gin.Engine, prefix string) {
	if rt.Ops != nil {
		r.GET("/health", rt.Ops.Health)
		r.GET("/ready", rt.Ops.Ready)
		r.GET("/metrics", rt.Ops.Prometheus)
	}

	api := r.Group(prefix)
	guarded := api.Group("")
	if rt.RequireCatalog != nil {
		guarded.Use(rt.RequireCatalog)
	}

	if rt.Photographers != nil {
		guarded.GET("/photographers", rt.Photographers.List)
		guarded.GET("/photographers/facets", rt.Photographers.Facets)
		guarded.GET("/photographers/export", rt.Photographers.Export)
		guarded.GET("/photographers/:id", rt.Photographers.Detail)
		guarded.GET("/photographers/:id/portfolio/:index", rt.Photographers.Portfolio)
	}
	if rt.Inquiries != nil {
		guarded.POST("/photographers/:id/inquiries", rt.Inquiries.Create)
		api.GET("/inquiries/:id", rt.Inquiries.Get)
	}
	if rt.Sessions != nil {
		guarded.POST("/sessions", rt.Sessions.Create)
		guarded.GET("/sessions/:id", rt.Sessions.Get)
		guarded.POST("/sessions/:id/actions", rt.Sessions.Dispatch)
	}
	if rt.Catalog != nil {
		api.POST("/admin/catalog/refresh", rt.Catalog.Refresh)
		api.GET("/admin/catalog/status", rt.Catalog.Status)
	}
}
