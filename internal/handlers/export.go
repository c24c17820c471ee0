// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"bibtree/internal/export"
)

// Export streams the current tree and registry as an xlsx workbook.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	literature, err := a.registry.List(r.Context())
	if err != nil {
		slog.Error("export: list literature failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not load literature")
		return
	}

	f, err := export.Workbook(a.sync.Snapshot(), literature)
	if err != nil {
		slog.Error("export: build workbook failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not build workbook")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	if err := f.Write(w); err != nil {
		slog.Error("export: write workbook failed", "error", err)
	}
}
