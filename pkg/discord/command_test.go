package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler)

	if cmd == nil {
		t.Fatal("NewCommand returned nil")
	}

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}

	if cmd.Description != "Test command" {
		t.Errorf("Description = %v, want %v", cmd.Description, "Test command")
	}

	if cmd.Category != "test" {
		t.Errorf("Category = %v, want %v", cmd.Category, "test")
	}

	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
}

// TestCommandWithPermissions verifies the permission builder methods
func TestCommandWithPermissions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithUserPermissions(discordgo.PermissionAdministrator)

	if cmd.UserPermissions != discordgo.PermissionAdministrator {
		t.Errorf("UserPermissions = %v, want %v", cmd.UserPermissions, discordgo.PermissionAdministrator)
	}
}

// TestCommandAsOwnerOnly verifies the AsOwnerOnly builder method
func TestCommandAsOwnerOnly(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).AsOwnerOnly()

	if !cmd.OwnerOnly {
		t.Error("OwnerOnly should be true after calling AsOwnerOnly()")
	}
}

// TestContextArgs verifies argument helpers used by the command parsers
func TestContextArgs(t *testing.T) {
	ctx := &CommandContext{Args: []string{"@user", "10", "spamming", "in", "general"}}

	if got := ctx.Arg(1); got != "10" {
		t.Errorf("Arg(1) = %v, want %v", got, "10")
	}

	if got := ctx.Arg(7); got != "" {
		t.Errorf("Arg(7) = %v, want empty string", got)
	}

	if got := ctx.ArgsFrom(2); got != "spamming in general" {
		t.Errorf("ArgsFrom(2) = %v, want %v", got, "spamming in general")
	}

	if got := ctx.ArgsFrom(9); got != "" {
		t.Errorf("ArgsFrom(9) = %v, want empty string", got)
	}
}

// TestCommandCollection verifies registry set/get behavior
func TestCommandCollection(t *testing.T) {
	cc := NewCommandCollection()

	handler := func(ctx *CommandContext) error { return nil }
	cmd := NewCommand("warn", "Warn a user", "mod", handler)

	cc.Set(cmd.Name, cmd)

	got, ok := cc.Get("warn")
	if !ok {
		t.Fatal("Get() did not find registered command")
	}
	if got != cmd {
		t.Error("Get() returned a different command")
	}

	if _, ok := cc.Get("unknown"); ok {
		t.Error("Get() should not find an unregistered command")
	}

	if cc.Size() != 1 {
		t.Errorf("Size() = %v, want 1", cc.Size())
	}
}
