package app

// demoMenu is shown when no definition file is given.
const demoMenu = `&File	0
	&New	101
	&Open...	102
	Open &Recent	0
		notes.txt	110
		todo.md	111
		&Clear list	119	disabled
	-
	&Save	103
	Save &As...	104
	-
	E&xit	105
&Edit	0
	&Undo	201	disabled
	-
	Cu&t	202
	&Copy	203
	&Paste	204
&View	0
	&Status bar	301	checked
	-
	&Small	310	radio
	&Medium	311	radio,checked
	&Large	312	radio
-
&About	901
`
