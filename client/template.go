// wavetile.go - a web-based wave-function-collapse map builder.
// Copyright (C) 2025 the wavetile.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package client

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/greenfold/wavetile.go/wfc"
)

/*

solver pages

*/

// A LayoutChoice names one stored layout the user can start from.
type LayoutChoice struct {
	ID, Name string
}

// A templateSolverPage contains the values to fill the solver
// page template.
type templateSolverPage struct {
	SessionID, LayoutID       string
	Title, TopHead            string
	IconFile, CssFile, JsFile string
	Width, Height             int
	Legend                    []templateLegendEntry
	Layouts                   []LayoutChoice
	ApplicationFooter         string
}

// A templateLegendEntry is one palette row of the solver page's
// legend: the letter the map view prints, the asset name, and the
// symmetry class.
type templateLegendEntry struct {
	Letter      string
	Name        string
	Equivalence string
}

// add solver statics to the static list
func init() {
	staticResourcePaths["/solver.js"] = filepath.Join("solver", "solver.js")
	staticResourcePaths["/solver.css"] = filepath.Join("solver", "solver.css")
}

// SolverPage executes the solver page template over the passed
// session, palette, and layout choices, and returns the solver page
// content as a string.  The page drives the solve itself, through
// the JSON endpoints.
func SolverPage(sessionID, layoutID string, state *wfc.GridState,
	palette []wfc.PaletteEntry, layouts []LayoutChoice) string {
	legend := make([]templateLegendEntry, len(palette))
	for i, p := range palette {
		letter := "?"
		if i < 26 {
			letter = string(rune('a' + i))
		}
		legend[i] = templateLegendEntry{
			Letter:      letter,
			Name:        p.Name,
			Equivalence: p.Equivalence.String(),
		}
	}

	tsp := templateSolverPage{
		SessionID:         sessionID,
		LayoutID:          layoutID,
		Title:             fmt.Sprintf("%s: Map Builder", brandName),
		TopHead:           "Map Builder",
		IconFile:          iconPath,
		CssFile:           "/solver.css",
		JsFile:            "/solver.js",
		Width:             state.Width,
		Height:            state.Height,
		Legend:            legend,
		Layouts:           layouts,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("solver")
	if err != nil {
		return ErrorPage(fmt.Errorf("Couldn't load the %q template: %v", "solver", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tsp)
	if err != nil {
		return ErrorPage(err)
	}
	return buf.String()
}

/*

error pages

*/

// A templateErrorPage contains the values to fill the error page
// template.
type templateErrorPage struct {
	Title, TopHead, Message string
	IconFile, ReportBugPage string
	ApplicationFooter       string
}

// ErrorPage returns error page content for the given error.
func ErrorPage(e error) string {
	tep := templateErrorPage{
		Title:             fmt.Sprintf("%s: Error", brandName),
		TopHead:           "Error Page",
		Message:           e.Error(),
		IconFile:          iconPath,
		ReportBugPage:     reportBugPath,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("error")
	if err != nil {
		return fmt.Sprintf("Couldn't load the %q template: %v", "error", err)
	}

	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tep)
	if err != nil {
		return fmt.Sprintf("A templating error has occurred: %v", err)
	}
	return buf.String()
}

/*

application footer

*/

const (
	brandName                 = "Wavetile"
	applicationNameEnvVar     = "APPLICATION_NAME"
	applicationEnvEnvVar      = "APPLICATION_ENV"
	applicationVersionEnvVar  = "APPLICATION_VERSION"
	applicationInstanceEnvVar = "APPLICATION_INSTANCE"
	applicationBuildEnvVar    = "APPLICATION_BUILD"
)

// applicationFooter - the application footer that shows at the
// bottom of all pages.
func applicationFooter() string {
	appName := os.Getenv(applicationNameEnvVar)
	appEnv := os.Getenv(applicationEnvEnvVar)
	appVersion := os.Getenv(applicationVersionEnvVar)
	appInstance := os.Getenv(applicationInstanceEnvVar)
	appBuild := os.Getenv(applicationBuildEnvVar)

	if appName == "" {
		appName = brandName
	}

	if appEnv == "" {
		appEnv = "local"
	}

	if appVersion != "" {
		appVersion = " " + appVersion
	}
	if len(appBuild) >= 7 {
		appBuild = appBuild[:7]
	}

	if appInstance != "" {
		appInstance = " (dyno " + appInstance + ")"
	}

	switch appEnv {
	case "local":
		return "[" + appName + " local]"
	case "dev":
		return "[" + appName + " CI/CD]"
	case "stg":
		return "[" + appName + appVersion + " <" + appBuild + ">]"
	case "prd":
		return "[" + appName + appVersion + " <" + appBuild + ">" + appInstance + "]"
	}
	return "[" + appName + " <??>]"
}
