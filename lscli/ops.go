package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/letterspace/spacing"
	"github.com/pterm/pterm"
)

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: load:<path>"), false
	}
	if err := intp.loadFont(op.arg); err != nil {
		return err, false
	}
	printFontInfo(intp.font)
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	printFontInfo(intp.font)
	return nil, false
}

func glyphsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	var names []string
	for _, name := range intp.font.Glyphs.Names() {
		if strings.HasPrefix(name, op.arg) {
			names = append(names, name)
		}
	}
	pterm.Printf("%d glyphs: %s\n", len(names), strings.Join(names, " "))
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	g := intp.font.Glyphs.Glyph(op.arg)
	if g == nil {
		return fmt.Errorf("glyph not found: %q", op.arg), false
	}
	printGlyph(g, intp.font.Glyphs)
	return nil, false
}

// spaceOp spaces a single glyph, or all glyphs of the font if no glyph name
// is given.
func spaceOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		intp.batch = intp.spacer().SpaceLayer()
		printBatch(intp.font, intp.batch)
		return nil, false
	}
	g := intp.font.Glyphs.Glyph(op.arg)
	if g == nil {
		return fmt.Errorf("glyph not found: %q", op.arg), false
	}
	res, err := intp.spacer().Compute(g)
	if err != nil {
		return err, false
	}
	printResult(intp.font, res)
	return nil, false
}

var paramKeys = map[string]string{
	"area":        spacing.KeyArea,
	"depth":       spacing.KeyDepth,
	"overshoot":   spacing.KeyOvershoot,
	"frequency":   spacing.KeyFrequency,
	"workers":     spacing.KeyWorkers,
	"superbezier": spacing.KeySuperBezier,
}

// setOp changes a spacing parameter, e.g. "set:depth:20".
func setOp(intp *Intp, op *Op) (error, bool) {
	key, ok := paramKeys[strings.ToLower(op.arg)]
	if !ok || op.arg2 == "" {
		return errors.New("usage: set:<area|depth|overshoot|frequency|workers|superbezier>:<value>"), false
	}
	old, wasSet := intp.conf[key]
	intp.conf[key] = op.arg2
	params, err := spacing.ParamsFromConfig(intp.conf)
	if err != nil {
		if wasSet {
			intp.conf[key] = old
		} else {
			delete(intp.conf, key)
		}
		return err, false
	}
	intp.params = params
	tracer().Infof("%s = %s", key, op.arg2)
	return nil, false
}

func paramsOp(intp *Intp, op *Op) (error, bool) {
	printParams(intp.params)
	return nil, false
}

// writeOp writes the background layer of the last batch run into the UFO,
// or into a copy of it if a destination is given.
func writeOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if intp.batch == nil {
		return errors.New("nothing to write, run space first"), false
	}
	path, err := intp.font.WriteBackground(intp.batch, op.arg)
	if err != nil {
		return err, false
	}
	pterm.Info.Printf("wrote layer %s to %s\n", spacing.BackgroundLayer, path)
	return nil, false
}
