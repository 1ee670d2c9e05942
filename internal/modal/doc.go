// Package modal provides a dialog that wraps a child view with a title,
// an error banner and save/cancel buttons.
//
// The caller answers every Save event with Hide or ShowError:
//
//	dlg, err := modal.New(form, modal.Options{Title: "Edit profile"})
//	if err != nil {
//		return err
//	}
//	dlg.On(modal.Save, func(d *modal.Modal) {
//		if err := profile.Save(ctx, form.Attributes(), resource.Options{}); err != nil {
//			d.ShowError(err.Error())
//			return
//		}
//		d.Hide()
//	})
//	cmd := dlg.Show()
//
// While a save is pending the buttons are disabled and esc is ignored.
package modal
