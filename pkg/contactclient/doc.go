// Package contactclient submits the site's contact form from Go.
//
// Client.Send posts one multipart submission and turns every outcome into a
// State; it has no error return. Form adds the display state machine
//
//	idle -> sending -> success | error
//
// with edits and repeat submits refused while a request is in flight.
//
//	form := contactclient.NewForm(contactclient.New("https://packwoodplates.com/api/contact"))
//	_ = form.Navigate(url.Values{"source": {"nameplates"}})
//	_ = form.Edit(func(f *contactclient.Fields) {
//	    f.Name, f.Email = "Jamie Carter", "jamie@example.com"
//	})
//	state, _ := form.Submit(ctx)
package contactclient
