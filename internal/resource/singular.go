package resource

import "context"

// SingularModel is a resource living at a fixed URL with no id segment. It
// answers GET, PUT and DELETE only: PUT both creates and updates, so Save
// never POSTs regardless of IsNew. After a successful Destroy the model is
// cleared in place so holders of the reference see an empty resource.
type SingularModel struct {
	*Model
}

// NewSingularModel returns a singular resource addressed by url.
func NewSingularModel(client Requester, url string) *SingularModel {
	m := NewModel(client, url, nil)
	m.url = m.urlRoot
	m.mode = SaveAlwaysUpdate
	return &SingularModel{Model: m}
}

// Destroy deletes the resource, runs the caller's Success callback and
// then clears every attribute.
func (s *SingularModel) Destroy(ctx context.Context, opts Options) error {
	success := opts.Success
	opts.Success = func() {
		if success != nil {
			success()
		}
		s.Clear()
	}
	return s.Model.Destroy(ctx, opts)
}
