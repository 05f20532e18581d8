// Package ui implements the terminal user interface for driveinfo using Bubbletea.
package ui
