package cli

const grammar = "<index>[n|l|r|i][x<int>][y<int>][f][p][o]"

const shortHelp = `Usage:
  monlayout ` + grammar + ` ...

Run "monlayout --help" for details.`

const longHelp = `monlayout arranges the attached monitors with xrandr.

Each argument is a directive for one monitor:

  ` + grammar + `

  index    monitor index as listed by "monlayout monitors" (required)
  n l r i  rotation: normal, left, right or inverted (default n)
  x<int>   absolute X position (default: right of the previous monitor)
  y<int>   absolute Y position (default: same as the previous monitor)
  f        turn the output off in a separate xrandr call before configuring it
  p        make this the primary monitor (at most one)
  o        turn the output off

Letters after the index may come in any order and are case-insensitive.
Monitors without a directive are turned off. Directives that do not parse or
name an unknown monitor are ignored with a warning. Arguments starting with
"-" are read as flags; pass them after "--" to have them treated as directives.

Sample for 3 monitors:
  0. Laptop Display (1600x1200) on eDP
  1. Monitor One (1920x1080) on DisplayPort-1
  2. Monitor Two (1920x1200) on DisplayPort-2

  monlayout 1L 2x1080y300 0

  1L          monitor 1 is leftmost and rotated left, placed at 0x0
  2x1080y300  monitor 2 is placed at 1080x300, right of the rotated monitor
  0           monitor 0 follows at 3000x300 (1080 + 1920) and keeps Y 300

Exit status: 2 when no directive matches a monitor, 3 when every monitor would
be turned off, 4 when more than one monitor is primary, 5 when an xrandr call
failed, 130 when interrupted.`
