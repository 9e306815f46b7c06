package handler

import "net/http"

type emptyResponse struct{}

func (emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Empty answers 204 No Content. A DataStar action that changes nothing in
// the page, such as a dismiss whose patch travels over /events, returns it.
func Empty() Response {
	return emptyResponse{}
}
