package app

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/vk/syclitgo/internal/composer"
)

// describe prints a human-readable view of the profile: the substitution
// table, feature tags, and exclusions. Meant for operators debugging a suite
// setup, not for machine consumption.
func (a *App) describe(profile *composer.Profile) {
	fmt.Fprintln(a.outW, "Substitutions:")
	table := tablewriter.NewWriter(a.outW)
	table.SetHeader([]string{"PLACEHOLDER", "VALUE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, token := range profile.Substitutions.Placeholders() {
		value, _ := profile.Substitutions.Get(token)
		table.Append([]string{token, value})
	}
	table.Render()

	fmt.Fprintf(a.outW, "\nFeatures: %s\n", strings.Join(profile.Features.List(), ", "))
	fmt.Fprintf(a.outW, "Excludes: %s\n", strings.Join(profile.Excludes, ", "))

	fmt.Fprintln(a.outW, "\nEnvironment:")
	envTable := tablewriter.NewWriter(a.outW)
	envTable.SetHeader([]string{"VARIABLE", "VALUE"})
	envTable.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	envTable.SetAlignment(tablewriter.ALIGN_LEFT)
	envTable.SetHeaderLine(false)
	envTable.SetBorder(false)
	envTable.SetNoWhiteSpace(true)
	envTable.SetTablePadding("    ")
	for _, pair := range profile.Env.Environ() {
		name, value, _ := strings.Cut(pair, "=")
		envTable.Append([]string{name, value})
	}
	for _, name := range profile.Env.Unsets() {
		envTable.Append([]string{name, "<unset>"})
	}
	envTable.Render()

	if profile.MaxTestTime > 0 {
		fmt.Fprintf(a.outW, "\nMax test time: %s\n", profile.MaxTestTime)
	}
}
