package api

import "net/http"

func (a *API) handleFinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.reportSvc.Summary(r.Context())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (a *API) handleMonthlyPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := a.reportSvc.Monthly(r.Context())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (a *API) handleEventPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := a.reportSvc.ByEvent(r.Context())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (a *API) handleExpenseBreakdown(w http.ResponseWriter, r *http.Request) {
	rows, err := a.reportSvc.Breakdown(r.Context())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
