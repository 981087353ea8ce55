package main

import "net/http"

const version = "1.0.0"

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := "production"
	if app.cfg.Debug {
		env = "development"
	}
	app.Http.Ok(w, r, envelop{
		"status":      "available",
		"environment": env,
		"version":     version,
	}, "")
}
