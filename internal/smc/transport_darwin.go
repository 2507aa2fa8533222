//go:build darwin

package smc

/*
#cgo LDFLAGS: -framework IOKit
#include <stdint.h>
#include <string.h>
#include <IOKit/IOKitLib.h>

#define KERNEL_INDEX_SMC 2
#define SMC_CMD_READ_BYTES 5
#define SMC_CMD_READ_KEYINFO 9

typedef struct {
	unsigned char  major;
	unsigned char  minor;
	unsigned char  build;
	unsigned char  reserved[1];
	unsigned short release;
} SMCKeyDataVers;

typedef struct {
	uint16_t version;
	uint16_t length;
	uint32_t cpuPLimit;
	uint32_t gpuPLimit;
	uint32_t memPLimit;
} SMCKeyDataPLimit;

typedef struct {
	uint32_t dataSize;
	uint32_t dataType;
	char     dataAttributes;
} SMCKeyDataKeyInfo;

typedef struct {
	uint32_t          key;
	SMCKeyDataVers    vers;
	SMCKeyDataPLimit  pLimitData;
	SMCKeyDataKeyInfo keyInfo;
	char              result;
	char              status;
	char              data8;
	uint32_t          data32;
	unsigned char     bytes[32];
} SMCKeyData;

static kern_return_t smc_open(io_connect_t *conn) {
	io_service_t service = IOServiceGetMatchingService(kIOMainPortDefault,
		IOServiceMatching("AppleSMC"));
	if (service == 0) {
		return kIOReturnNotFound;
	}
	kern_return_t kr = IOServiceOpen(service, mach_task_self(), 0, conn);
	IOObjectRelease(service);
	return kr;
}

static kern_return_t smc_call(io_connect_t conn, SMCKeyData *in, SMCKeyData *out) {
	size_t outSize = sizeof(SMCKeyData);
	return IOConnectCallStructMethod(conn, KERNEL_INDEX_SMC,
		in, sizeof(SMCKeyData), out, &outSize);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type darwinTransport struct {
	conn C.io_connect_t
}

func openTransport() (Transport, error) {
	var conn C.io_connect_t
	if kr := C.smc_open(&conn); kr != C.KERN_SUCCESS {
		return nil, fmt.Errorf("smc service open failed: 0x%08x", uint32(kr))
	}

	return &darwinTransport{conn: conn}, nil
}

func keyToUint32(key string) C.uint32_t {
	var v uint32
	for i := 0; i < 4 && i < len(key); i++ {
		v = v<<8 | uint32(key[i])
	}

	return C.uint32_t(v)
}

func uint32ToType(v uint32) string {
	return string([]byte{
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	})
}

func (t *darwinTransport) KeyInfo(key string) (KeyInfo, error) {
	var in, out C.SMCKeyData
	in.key = keyToUint32(key)
	in.data8 = C.SMC_CMD_READ_KEYINFO

	if kr := C.smc_call(t.conn, &in, &out); kr != C.KERN_SUCCESS {
		return KeyInfo{}, fmt.Errorf("smc key info %q failed: 0x%08x", key, uint32(kr))
	}
	if out.result != 0 {
		return KeyInfo{}, fmt.Errorf("smc key info %q result: %d", key, out.result)
	}

	return KeyInfo{
		Size: int(out.keyInfo.dataSize),
		Type: uint32ToType(uint32(out.keyInfo.dataType)),
	}, nil
}

func (t *darwinTransport) ReadData(key string, size int) ([]byte, error) {
	if size <= 0 || size > 32 {
		return nil, fmt.Errorf("smc read %q: bad payload size %d", key, size)
	}

	var in, out C.SMCKeyData
	in.key = keyToUint32(key)
	in.keyInfo.dataSize = C.uint32_t(size)
	in.data8 = C.SMC_CMD_READ_BYTES

	if kr := C.smc_call(t.conn, &in, &out); kr != C.KERN_SUCCESS {
		return nil, fmt.Errorf("smc read %q failed: 0x%08x", key, uint32(kr))
	}
	if out.result != 0 {
		return nil, fmt.Errorf("smc read %q result: %d", key, out.result)
	}

	data := make([]byte, size)
	copy(data, (*[32]byte)(unsafe.Pointer(&out.bytes[0]))[:size])

	return data, nil
}

func (t *darwinTransport) Close() error {
	if kr := C.IOServiceClose(t.conn); kr != C.KERN_SUCCESS {
		return fmt.Errorf("smc service close failed: 0x%08x", uint32(kr))
	}

	return nil
}
