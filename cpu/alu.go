package cpu

// Alu performs the ALU operation op on registers reg_a and reg_b.
// ADD and MUL replace reg_a with the result, modulo 256.
// CMP replaces the flags register with exactly one of FL_EQ, FL_GT or FL_LT.
func (cpu *Cpu) Alu(op AluOp, reg_a, reg_b byte) (err error) {
	a, err := cpu.Register.Get(reg_a)
	if err != nil {
		return
	}
	b, err := cpu.Register.Get(reg_b)
	if err != nil {
		return
	}

	switch op {
	case ALU_OP_ADD:
		err = cpu.Register.Set(reg_a, a+b)
	case ALU_OP_MUL:
		err = cpu.Register.Set(reg_a, a*b)
	case ALU_OP_CMP:
		switch {
		case a == b:
			cpu.Flags = FL_EQ
		case a > b:
			cpu.Flags = FL_GT
		default:
			cpu.Flags = FL_LT
		}
	default:
		err = ErrAluOp(op)
	}

	return
}
