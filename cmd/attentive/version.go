package main

// ProgramName identifies the program in user-facing surfaces.
const ProgramName = "Attentive"

// Version is the program version. Release builds override it with
// -ldflags "-X main.Version=...".
var Version = "0.1.0"
