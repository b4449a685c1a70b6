package main

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gosketch/glfwcontext"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/panel"
	"github.com/richinsley/gosketch/shader"
	"github.com/richinsley/gosketch/sketch"
	"go.uber.org/zap"
)

const shiftNudgeSteps = 10

func runInteractive(ctx *glfwcontext.Context, sk *sketch.Sketch, lib *shader.Library) error {
	updateStatus := func() {
		ctx.SetStatus(statusLine(sk.Playing(), sk.Panel().Summary()))
	}
	sk.Panel().OnUpdate(func(*panel.Panel) { updateStatus() })
	bindKeys(ctx, sk, updateStatus)
	updateStatus()

	var changes <-chan string
	if lib.Dir() != "" {
		w, err := shader.Watch(lib.Dir())
		if err != nil {
			return err
		}
		defer w.Close()
		changes = w.Changes()
		logger.Log.Info("watching shaders",
			zap.String("dir", lib.Dir()),
			zap.Strings("overridable", shader.Names()))
	}

	ctx.Run(func() {
		select {
		case name := <-changes:
			logger.Log.Info("shader changed", zap.String("file", name))
			reload(sk)
		default:
		}
		if sk.Err() != nil {
			ctx.RequestClose()
		}
	})
	if values := sk.Panel().Values(); len(values) > 0 {
		logger.Log.Info("final panel values", zap.Any("values", values))
	}
	return sk.Err()
}

func bindKeys(ctx *glfwcontext.Context, sk *sketch.Sketch, updateStatus func()) {
	p := sk.Panel()
	ctx.RegisterKeyCallback(glfw.KeySpace, func(glfw.ModifierKey) {
		if sk.Playing() {
			sk.Stop()
		} else {
			sk.Play()
		}
		updateStatus()
	})
	ctx.RegisterKeyCallback(glfw.KeyTab, func(glfw.ModifierKey) { p.Next() })
	ctx.RegisterKeyCallback(glfw.KeyDown, func(glfw.ModifierKey) { p.Next() })
	ctx.RegisterKeyCallback(glfw.KeyUp, func(glfw.ModifierKey) { p.Prev() })
	ctx.RegisterKeyCallback(glfw.KeyRight, func(mods glfw.ModifierKey) { p.Nudge(nudgeSteps(mods)) })
	ctx.RegisterKeyCallback(glfw.KeyLeft, func(mods glfw.ModifierKey) { p.Nudge(-nudgeSteps(mods)) })
	ctx.RegisterKeyCallback(glfw.KeyR, func(glfw.ModifierKey) { reload(sk) })
}

func reload(sk *sketch.Sketch) {
	if err := sk.ReloadShaders(); err != nil {
		logger.Log.Error("shader reload failed", zap.Error(err))
	}
}

func nudgeSteps(mods glfw.ModifierKey) int {
	if mods&glfw.ModShift != 0 {
		return shiftNudgeSteps
	}
	return 1
}

func statusLine(playing bool, summary string) string {
	state := "stopped"
	if playing {
		state = "playing"
	}
	if summary == "" {
		return state
	}
	return state + " | " + summary
}
