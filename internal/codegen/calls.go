package codegen

import "fmt"

// emitCallFrame emits the save/call/restore envelope shared by every call
// site (spec.md §4.5's register-allocation discipline); the caller
// allocates and fills the post-call result temporary itself once this
// returns. seed must be the temporary counter's value from *before* the
// receiver and argument expressions were evaluated; resetting to it after
// the call reclaims exactly the temporaries that evaluation allocated.
func (g *Gen) emitCallFrame(b *Builder, mc *memberCtx, seed int, label string, recv string, args []string) {
	total := len(args)
	if recv != "" {
		total++
	}
	aRegs := make([]string, total)
	for i := range aRegs {
		aRegs[i] = argReg(i)
	}

	for _, a := range aRegs {
		b.Linef("save %s", a)
	}
	for j := 0; j < seed; j++ {
		b.Linef("save t%d", j)
	}

	pos := 0
	if recv != "" {
		b.Linef("move %s, %s", aRegs[pos], recv)
		pos++
	}
	for _, arg := range args {
		b.Linef("move %s, %s", aRegs[pos], arg)
		pos++
	}

	b.Linef("call %s", label)

	mc.temp = seed

	for j := seed - 1; j >= 0; j-- {
		b.Linef("restore t%d", j)
	}
	for i := len(aRegs) - 1; i >= 0; i-- {
		b.Linef("restore %s", aRegs[i])
	}
}

func argReg(i int) string { return fmt.Sprintf("a%d", i) }
