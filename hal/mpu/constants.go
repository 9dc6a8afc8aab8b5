package mpu

// MPU-9250 register addresses used by the bus-master bridge.
const (
	RegI2CMstCtrl     = 0x24 // I2C_MST_CTRL: master clock and multi-master config
	RegI2CSlv0Addr    = 0x25 // I2C_SLV0_ADDR: slave address, bit 7 = read
	RegI2CSlv0Reg     = 0x26 // I2C_SLV0_REG: slave register to access
	RegI2CSlv0Ctrl    = 0x27 // I2C_SLV0_CTRL: enable bit 7 + transfer length
	RegIntPinCfg      = 0x37 // INT_PIN_CFG: interrupt pin / bypass config
	RegExtSensData00  = 0x49 // EXT_SENS_DATA_00: start of external sensor data window
	RegI2CSlv0DO      = 0x63 // I2C_SLV0_DO: data out for slave 0 writes
	RegUserCtrl       = 0x6A // USER_CTRL: master enable, interface select
)

// Register values for the pass-through configuration sequence.
const (
	intPinClearOnRead = 0x10 // INT_ANYRD_2CLEAR: clear interrupt on any read
	mstCtrlMultiMst   = 0x0D // multi-master enable, 400 kHz master clock
	userCtrlMaster    = 0x30 // I2C master mode, disable slave interface (SPI only)
)

// slaveReadFlag marks a slave-0 transaction as a read when set in
// I2C_SLV0_ADDR.
const slaveReadFlag = 0x80

// slaveEnableFlag enables the slave-0 transaction when set in I2C_SLV0_CTRL;
// the low nibble carries the transfer length.
const slaveEnableFlag = 0x80

// ExtSensDataSize is the size of the external sensor data window
// (EXT_SENS_DATA_00 through EXT_SENS_DATA_23). Transfers longer than the
// window cannot be fetched in one pass.
const ExtSensDataSize = 24
